package disasm

import (
	"fmt"
	"io"
	"strings"

	"github.com/retroenv/chip8vm/internal/machine"
)

// dataBytesPerLine is the maximum number of data bytes written in a single line.
const dataBytesPerLine = 8

// write writes the listing in retroasm compatible CHIP-8 format.
func (dis *Disasm) write(w io.Writer) error {
	if _, err := fmt.Fprintf(w, "; CHIP-8 ROM Disassembly\n"); err != nil {
		return fmt.Errorf("writing header comment: %w", err)
	}
	if _, err := fmt.Fprintf(w, "; Program starts at $%03X in CHIP-8 memory space\n\n", machine.ProgramStart); err != nil {
		return fmt.Errorf("writing memory space comment: %w", err)
	}
	if _, err := fmt.Fprintf(w, ".org $%03X\n\n", machine.ProgramStart); err != nil {
		return fmt.Errorf("writing org directive: %w", err)
	}

	end := dis.endIndex()
	for i := 0; i < end; {
		offset := dis.offsets[i]
		if offset.Label != "" {
			if _, err := fmt.Fprintf(w, "%s:\n", offset.Label); err != nil {
				return fmt.Errorf("writing label %s: %w", offset.Label, err)
			}
		}

		if offset.isCode {
			if err := writeLine(w, offset.Code, offset.Comment); err != nil {
				return fmt.Errorf("writing code: %w", err)
			}
			i += opcodeSize
			continue
		}

		n := dis.dataRun(i, end)
		if err := writeLine(w, formatData(dis.program[i:i+n]), offset.Comment); err != nil {
			return fmt.Errorf("writing data: %w", err)
		}
		i += n
	}
	return nil
}

// dataRun returns the number of data bytes starting at index that can be
// written in a single line.
func (dis *Disasm) dataRun(index, end int) int {
	n := 1
	for index+n < end && n < dataBytesPerLine {
		next := dis.offsets[index+n]
		if next.isCode || next.Label != "" || dis.options.OffsetComments {
			break
		}
		n++
	}
	return n
}

// endIndex finds the end of the listing, trailing zero bytes are skipped
// unless they are requested.
func (dis *Disasm) endIndex() int {
	if dis.options.ZeroBytes {
		return len(dis.offsets)
	}

	for i := len(dis.offsets) - 1; i >= 0; i-- {
		offset := dis.offsets[i]
		if offset.isCode || offset.isOperand || offset.Label != "" || dis.program[i] != 0 {
			return i + 1
		}
	}
	return 0
}

func formatData(data []byte) string {
	var buf strings.Builder
	buf.WriteString(fmt.Sprintf(".byte $%02X", data[0]))
	for _, b := range data[1:] {
		buf.WriteString(fmt.Sprintf(", $%02X", b))
	}
	return buf.String()
}

func writeLine(w io.Writer, code, comment string) error {
	line := "    " + code
	if comment == "" {
		_, err := fmt.Fprintf(w, "%s\n", line)
		return err
	}
	_, err := fmt.Fprintf(w, "%-32s ; %s\n", line, comment)
	return err
}
