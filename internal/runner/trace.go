package runner

import (
	"github.com/retroenv/chip8vm/internal/disasm"
	"github.com/retroenv/chip8vm/internal/interpreter"
	"github.com/retroenv/retrogolib/log"
)

// TraceLogger returns a tracer that logs every executed instruction with its mnemonic.
func TraceLogger(logger *log.Logger) interpreter.TraceFunc {
	return func(address uint16, ins interpreter.Instruction) {
		logger.Debug("Executing",
			log.Hex("address", address),
			log.Hex("opcode", ins.Word),
			log.String("code", disasm.Format(ins.Word)))
	}
}
