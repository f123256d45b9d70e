package disasm

import (
	"fmt"
	"slices"

	"github.com/retroenv/retrogolib/log"
)

const (
	funcNaming  = "_func_%03x"
	labelNaming = "_label_%03x"
	dataNaming  = "_data_%03x"
)

// processJumpDestinations names all branch destinations and references to
// them in the instructions that branch there.
func (dis *Disasm) processJumpDestinations() {
	destinations := make([]uint16, 0, len(dis.branchDestinations))
	for dest := range dis.branchDestinations {
		destinations = append(destinations, dest)
	}
	slices.Sort(destinations)

	names := make(map[uint16]string, len(destinations))
	for _, address := range destinations {
		index, _ := dis.addressToIndex(address)
		offset := &dis.offsets[index]

		name := offset.Label
		if name == "" {
			switch {
			case offset.isCall:
				name = fmt.Sprintf(funcNaming, address)
			case offset.isCode || offset.isOperand:
				name = fmt.Sprintf(labelNaming, address)
			default:
				name = fmt.Sprintf(dataNaming, address)
			}
		}
		if offset.isOperand {
			// the destination is inside of an instruction and can not be labeled
			dis.logger.Warn("Branch into the middle of an instruction",
				log.Hex("address", address))
			continue
		}
		offset.Label = name
		names[address] = name
	}

	for i := range dis.offsets {
		offset := &dis.offsets[i]
		if !offset.isCode {
			continue
		}
		word := uint16(offset.Data[0])<<8 | uint16(offset.Data[1])
		if word&0xF000 != 0x1000 && word&0xF000 != 0x2000 && word&0xF000 != 0xA000 {
			continue
		}
		if name, ok := names[word&0x0FFF]; ok {
			offset.Code = replaceAddress(offset.Code, word&0x0FFF, name)
		}
	}
}

// replaceAddress replaces the formatted target address in the code by the label name.
func replaceAddress(code string, address uint16, name string) string {
	formatted := fmt.Sprintf("$%03X", address)
	if i := len(code) - len(formatted); i >= 0 && code[i:] == formatted {
		return code[:i] + name
	}
	return code
}
