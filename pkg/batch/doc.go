// Package batch 按行批量展开模板并分批写出结果。
//
// 输入每行一个模板，空行跳过；每个模板由 [vargen.Expand] 独立展开，
// 多个模板通过有界 worker 池并发处理。结果累计到 [Writer]，
// 达到批大小后整批写出，每条变体一行，批后可附加分隔行。
//
// # 输出顺序
//
// 默认按模板完成顺序写出（与源行顺序无关）；
// 使用 [WithOrdered] 可恢复源行顺序。单个模板内部的变体顺序始终不变。
//
// # 快速开始
//
//	stats, err := batch.GenerateFile(ctx, batch.FileConfig{
//	    Input:     "vargen_source_text.txt",
//	    Output:    "vargen_result_text.txt",
//	    BatchSize: 10,
//	    Separator: "-----",
//	})
package batch
