//go:build js && wasm

package main

import (
	"encoding/json"
	"syscall/js"

	"makedoc2rst/config"
	"makedoc2rst/internal/adapter/rst"
	"makedoc2rst/internal/domain"
	"makedoc2rst/internal/usecase"
)

var converter *usecase.ConvertUseCase

func init() {
	converter = usecase.NewConvertUseCase(rst.NewRenderer(nil), nil, domain.ProfileStandard,
		usecase.WithAttribution(config.DefaultAttribution),
	)
}

func main() {
	c := make(chan struct{})

	js.Global().Set("makedocConvert", js.FuncOf(convertContent))
	js.Global().Set("makedocRecords", js.FuncOf(listRecords))

	<-c
}

func convertContent(this js.Value, args []js.Value) interface{} {
	if len(args) < 2 {
		return makeError("usage: makedocConvert(source, content)")
	}

	conv := converter.Convert(args[0].String(), args[1].String())

	diagnostics := conv.Diagnostics
	if diagnostics == nil {
		diagnostics = []domain.Diagnostic{}
	}
	return makeResult(map[string]interface{}{
		"found":       conv.Found,
		"output":      conv.Output,
		"diagnostics": diagnostics,
	})
}

func listRecords(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return makeError("usage: makedocRecords(content)")
	}

	records, found := converter.Records(args[0].String())
	if records == nil {
		records = []domain.Record{}
	}
	return makeResult(map[string]interface{}{
		"found":   found,
		"records": records,
	})
}

func makeError(msg string) interface{} {
	result, _ := json.Marshal(map[string]interface{}{
		"error": msg,
	})
	return string(result)
}

func makeResult(data map[string]interface{}) interface{} {
	result, _ := json.Marshal(data)
	return string(result)
}
