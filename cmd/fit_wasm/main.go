//go:build js && wasm

package main

import (
	"archive/zip"
	"bytes"
	"encoding/json"
	"fmt"
	"path"
	"syscall/js"
	"time"

	fitsummary "github.com/lucasjlepore/fit-summary"
	"github.com/lucasjlepore/fit-summary/export"
)

func main() {
	js.Global().Set("summarizeFit", js.FuncOf(summarizeFit))
	select {}
}

// summarizeFit(fileBytes: Uint8Array, options?: {format, source_file_name,
// uniform_singletons, copy_source}) returns {ok, summary, notes, zip,
// warnings, files} or {ok: false, error}.
func summarizeFit(_ js.Value, args []js.Value) any {
	if len(args) < 1 {
		return failure("expected arguments: fileBytes(Uint8Array), options(object)")
	}
	fileArg := args[0]
	optsArg := js.Undefined()
	if len(args) > 1 {
		optsArg = args[1]
	}
	if fileArg.IsUndefined() || fileArg.IsNull() || fileArg.Get("length").Int() == 0 {
		return failure("fit file bytes are required")
	}

	fileBytes := make([]byte, fileArg.Get("length").Int())
	if n := js.CopyBytesToGo(fileBytes, fileArg); n == 0 {
		return failure("failed to read FIT bytes from JS input")
	}

	report, err := fitsummary.SummarizeBytes(fileBytes, fitsummary.Config{
		UniformSingletons: getBool(optsArg, "uniform_singletons", false),
	})
	if err != nil {
		return failure(err.Error())
	}
	report.SourceFile = getString(optsArg, "source_file_name", "input.fit")

	opts := export.Options{Format: getString(optsArg, "format", "json")}
	if getBool(optsArg, "copy_source", true) {
		opts.Source = fileBytes
	}
	bundle, err := export.Build(report, report.Decoded, opts)
	if err != nil {
		return failure(err.Error())
	}

	zipBytes, err := zipBundle(bundle)
	if err != nil {
		return failure(fmt.Sprintf("create zip: %v", err))
	}
	payload := js.Global().Get("Uint8Array").New(len(zipBytes))
	js.CopyBytesToJS(payload, zipBytes)

	summaryJSON, err := json.Marshal(report.Activity.Summary)
	if err != nil {
		return failure(fmt.Sprintf("encode summary: %v", err))
	}

	return map[string]any{
		"ok":       true,
		"summary":  string(summaryJSON),
		"notes":    fitsummary.BuildNotes(report),
		"zip":      payload,
		"warnings": stringsToAny(report.Warnings),
		"files":    stringsToAny(bundle.Manifest.Files),
	}
}

func failure(msg string) map[string]any {
	return map[string]any{
		"ok":    false,
		"error": msg,
	}
}

// zipBundle packs the bundle under a folder named after its export id, in
// manifest order. Entries are stamped with the Unix epoch.
func zipBundle(b *export.Bundle) ([]byte, error) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	epoch := time.Unix(0, 0).UTC()

	for _, name := range b.Manifest.Files {
		data, ok := b.Files[name]
		if !ok {
			return nil, fmt.Errorf("bundle is missing %s", name)
		}
		h := &zip.FileHeader{Name: path.Join(b.Manifest.ExportID, name), Method: zip.Deflate}
		h.Modified = epoch
		w, err := zw.CreateHeader(h)
		if err != nil {
			return nil, err
		}
		if _, err := w.Write(data); err != nil {
			return nil, err
		}
	}
	if err := zw.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func option(v js.Value, key string) (js.Value, bool) {
	if v.IsUndefined() || v.IsNull() {
		return js.Undefined(), false
	}
	out := v.Get(key)
	if out.IsUndefined() || out.IsNull() {
		return js.Undefined(), false
	}
	return out, true
}

func getString(v js.Value, key, fallback string) string {
	out, ok := option(v, key)
	if !ok {
		return fallback
	}
	s := out.String()
	if s == "" || s == "undefined" || s == "null" {
		return fallback
	}
	return s
}

func getBool(v js.Value, key string, fallback bool) bool {
	out, ok := option(v, key)
	if !ok || out.Type() != js.TypeBoolean {
		return fallback
	}
	return out.Bool()
}

func stringsToAny(values []string) []any {
	out := make([]any, len(values))
	for i, v := range values {
		out[i] = v
	}
	return out
}
