package cli

import (
	"bytes"
	"testing"
)

func TestTableRender(t *testing.T) {
	tbl := newTable("ID", "TYPE", "FILLS")
	tbl.addRow("1:1", "TEXT")
	tbl.addRow("1:22", "RECTANGLE", "SOLID")

	var buf bytes.Buffer
	if err := tbl.render(&buf); err != nil {
		t.Fatalf("render() error = %v", err)
	}

	want := "ID    TYPE       FILLS\n" +
		"----  ---------  -----\n" +
		"1:1   TEXT\n" +
		"1:22  RECTANGLE  SOLID\n"
	if got := buf.String(); got != want {
		t.Errorf("render() =\n%s\nwant\n%s", got, want)
	}
}

func TestTableNoHeaders(t *testing.T) {
	var buf bytes.Buffer
	if err := newTable().render(&buf); err != nil {
		t.Fatalf("render() error = %v", err)
	}
	if buf.Len() != 0 {
		t.Errorf("render() wrote %q, want nothing", buf.String())
	}
}
