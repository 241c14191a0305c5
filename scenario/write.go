package scenario

import (
	"bufio"
	"fmt"
	"io"
	"os"
)

// Write serializes a finished world. The generation field is written as 0
// to mark completion; objects are expected in row-major order.
func Write(w io.Writer, p Params, objects []Object) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "%d %d %d %d %d %d %d\n",
		p.PreyReproduction, p.PredatorReproduction, p.PredatorStarvation,
		0, p.Rows, p.Cols, len(objects))
	for _, o := range objects {
		fmt.Fprintf(bw, "%s %d %d\n", o.Kind, o.Row, o.Col)
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("writing scenario: %w", err)
	}
	return nil
}

// WriteFile writes to path, or to stdout when path is "" or "-".
func WriteFile(path string, p Params, objects []Object) error {
	if path == "" || path == "-" {
		return Write(os.Stdout, p, objects)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating output: %w", err)
	}
	if err := Write(f, p, objects); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
