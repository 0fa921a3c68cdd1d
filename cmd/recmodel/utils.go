package main

import (
	"fmt"
	"io"
	"os"

	"github.com/untillpro/goutils/logger"

	recmodel "github.com/reoring/recmodel"
	"github.com/reoring/recmodel/codec"
	"github.com/reoring/recmodel/tree"
)

const stdio = "-"

// resolveFormat picks the explicit format name, or the one implied by path.
func resolveFormat(name, path string) (codec.Format, error) {
	if name != "" {
		return codec.ParseFormat(name)
	}
	if path == "" || path == stdio {
		return codec.JSON, nil
	}
	return codec.FormatFromExt(path)
}

func readInput(path string) ([]byte, error) {
	if path == stdio {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(path)
}

func writeOutput(path string, data []byte) error {
	if path == "" || path == stdio {
		_, err := output.Write(data)
		return err
	}
	if logger.IsVerbose() {
		logger.Verbose("writing", path)
	}
	return os.WriteFile(path, data, 0o644)
}

// readDocument parses a record file in the given (or inferred) format.
func readDocument(path, format string) (*tree.Dict, error) {
	f, err := resolveFormat(format, path)
	if err != nil {
		return nil, err
	}
	data, err := readInput(path)
	if err != nil {
		return nil, err
	}
	if logger.IsVerbose() {
		logger.Verbose(fmt.Sprintf("read %s as %s (%d bytes)", path, f, len(data)))
	}
	return codec.Unmarshal(data, f, codec.Options{})
}

// readRecord parses a record file and resolves its style from the model root.
func readRecord(path, format string, strict bool) (recmodel.Record, error) {
	doc, err := readDocument(path, format)
	if err != nil {
		return nil, err
	}
	opt := recmodel.LoadOpt{}
	if strict {
		opt.Unknown = recmodel.UnknownStrict
	}
	return recmodel.DefaultRegistry.NewFromModel(doc, opt)
}

func writeRecord(rec recmodel.Record, path, format string) error {
	f, err := resolveFormat(format, path)
	if err != nil {
		return err
	}
	doc, err := rec.BuildModel()
	if err != nil {
		return err
	}
	data, err := codec.Marshal(doc, f, codec.Options{Indent: "  "})
	if err != nil {
		return err
	}
	return writeOutput(path, data)
}
