// Package vargen 将带方括号备选组的模板展开为全部字面量字符串。
//
// 模板中的 [a|b|c] 表示一个备选组，展开时在每个备选组位置各选一个备选项，
// 结果为所有选择的笛卡尔积。备选组可以任意嵌套。
//
// # 语义说明
//
//  1. "[" 与 "]" 按深度计数配对，"|" 仅在当前组的顶层分隔备选项
//  2. 组外的 "|" 与 "]" 是普通字符
//  3. 空备选项（如 "[a|]"）合法，展开为空串
//  4. 找不到配对 "]" 的 "[" 及其后全部文本按字面量保留，不报错
//  5. 结果顺序为深度优先、从左到右，不去重
//  6. 最终结果统一做空白归一化（连续空格合并为一个，去掉首尾空白）
//
// 不支持转义，"[" "]" "|" 无法作为字面量出现在备选组内部。
//
// # 快速开始
//
//	variations := vargen.Expand("Hello [World|Universe]!")
//	// ["Hello World!", "Hello Universe!"]
//
// 嵌套备选组：
//
//	variations := vargen.Expand("Good [[morning|evening], [John|Jane]| day]!")
//	// ["Good morning, John!", "Good morning, Jane!",
//	//  "Good evening, John!", "Good evening, Jane!", "Good day!"]
//
// 展开代价随独立备选组数量指数增长，调用方可先用 [Count] 评估规模。
//
// 详见 [Expand] 文档。
package vargen
