package hw

// opdef describes an opcode: its mnemonic, addressing mode, how it uses
// its operand and its handler.
type opdef struct {
	name   string
	mode   Mode
	access access
	exec   func(*CPU, operand)
}

var ops = [256]opdef{
	0x00: {"BRK", Immediate8, none, BRK},
	0x01: {"ORA", DirectIndexedIndirect, rd, ORA},
	0x02: {"COP", Immediate8, none, COP},
	0x03: {"ORA", StackRelative, rd, ORA},
	0x04: {"TSB", Direct, rmw, TSB},
	0x05: {"ORA", Direct, rd, ORA},
	0x06: {"ASL", Direct, rmw, ASL},
	0x07: {"ORA", DirectIndirectLong, rd, ORA},
	0x08: {"PHP", Implied, none, PHP},
	0x09: {"ORA", ImmediateM, rd, ORA},
	0x0A: {"ASL", Accumulator, none, ASLacc},
	0x0B: {"PHD", Implied, none, PHD},
	0x0C: {"TSB", Absolute, rmw, TSB},
	0x0D: {"ORA", Absolute, rd, ORA},
	0x0E: {"ASL", Absolute, rmw, ASL},
	0x0F: {"ORA", AbsoluteLong, rd, ORA},
	0x10: {"BPL", Relative, none, BPL},
	0x11: {"ORA", DirectIndirectY, rd, ORA},
	0x12: {"ORA", DirectIndirect, rd, ORA},
	0x13: {"ORA", StackRelativeIndirectY, rd, ORA},
	0x14: {"TRB", Direct, rmw, TRB},
	0x15: {"ORA", DirectX, rd, ORA},
	0x16: {"ASL", DirectX, rmw, ASL},
	0x17: {"ORA", DirectIndirectLongY, rd, ORA},
	0x18: {"CLC", Implied, none, CLC},
	0x19: {"ORA", AbsoluteY, rd, ORA},
	0x1A: {"INC", Accumulator, none, INCacc},
	0x1B: {"TCS", Implied, none, TCS},
	0x1C: {"TRB", Absolute, rmw, TRB},
	0x1D: {"ORA", AbsoluteX, rd, ORA},
	0x1E: {"ASL", AbsoluteX, rmw, ASL},
	0x1F: {"ORA", AbsoluteLongX, rd, ORA},
	0x20: {"JSR", Absolute, none, JSR},
	0x21: {"AND", DirectIndexedIndirect, rd, AND},
	0x22: {"JSL", AbsoluteLong, none, JSL},
	0x23: {"AND", StackRelative, rd, AND},
	0x24: {"BIT", Direct, rd, BIT},
	0x25: {"AND", Direct, rd, AND},
	0x26: {"ROL", Direct, rmw, ROL},
	0x27: {"AND", DirectIndirectLong, rd, AND},
	0x28: {"PLP", Implied, none, PLP},
	0x29: {"AND", ImmediateM, rd, AND},
	0x2A: {"ROL", Accumulator, none, ROLacc},
	0x2B: {"PLD", Implied, none, PLD},
	0x2C: {"BIT", Absolute, rd, BIT},
	0x2D: {"AND", Absolute, rd, AND},
	0x2E: {"ROL", Absolute, rmw, ROL},
	0x2F: {"AND", AbsoluteLong, rd, AND},
	0x30: {"BMI", Relative, none, BMI},
	0x31: {"AND", DirectIndirectY, rd, AND},
	0x32: {"AND", DirectIndirect, rd, AND},
	0x33: {"AND", StackRelativeIndirectY, rd, AND},
	0x34: {"BIT", DirectX, rd, BIT},
	0x35: {"AND", DirectX, rd, AND},
	0x36: {"ROL", DirectX, rmw, ROL},
	0x37: {"AND", DirectIndirectLongY, rd, AND},
	0x38: {"SEC", Implied, none, SEC},
	0x39: {"AND", AbsoluteY, rd, AND},
	0x3A: {"DEC", Accumulator, none, DECacc},
	0x3B: {"TSC", Implied, none, TSC},
	0x3C: {"BIT", AbsoluteX, rd, BIT},
	0x3D: {"AND", AbsoluteX, rd, AND},
	0x3E: {"ROL", AbsoluteX, rmw, ROL},
	0x3F: {"AND", AbsoluteLongX, rd, AND},
	0x40: {"RTI", Implied, none, RTI},
	0x41: {"EOR", DirectIndexedIndirect, rd, EOR},
	0x42: {"WDM", Immediate8, none, WDM},
	0x43: {"EOR", StackRelative, rd, EOR},
	0x44: {"MVP", BlockMove, none, MVP},
	0x45: {"EOR", Direct, rd, EOR},
	0x46: {"LSR", Direct, rmw, LSR},
	0x47: {"EOR", DirectIndirectLong, rd, EOR},
	0x48: {"PHA", Implied, none, PHA},
	0x49: {"EOR", ImmediateM, rd, EOR},
	0x4A: {"LSR", Accumulator, none, LSRacc},
	0x4B: {"PHK", Implied, none, PHK},
	0x4C: {"JMP", Absolute, none, JMP},
	0x4D: {"EOR", Absolute, rd, EOR},
	0x4E: {"LSR", Absolute, rmw, LSR},
	0x4F: {"EOR", AbsoluteLong, rd, EOR},
	0x50: {"BVC", Relative, none, BVC},
	0x51: {"EOR", DirectIndirectY, rd, EOR},
	0x52: {"EOR", DirectIndirect, rd, EOR},
	0x53: {"EOR", StackRelativeIndirectY, rd, EOR},
	0x54: {"MVN", BlockMove, none, MVN},
	0x55: {"EOR", DirectX, rd, EOR},
	0x56: {"LSR", DirectX, rmw, LSR},
	0x57: {"EOR", DirectIndirectLongY, rd, EOR},
	0x58: {"CLI", Implied, none, CLI},
	0x59: {"EOR", AbsoluteY, rd, EOR},
	0x5A: {"PHY", Implied, none, PHY},
	0x5B: {"TCD", Implied, none, TCD},
	0x5C: {"JML", AbsoluteLong, none, JML},
	0x5D: {"EOR", AbsoluteX, rd, EOR},
	0x5E: {"LSR", AbsoluteX, rmw, LSR},
	0x5F: {"EOR", AbsoluteLongX, rd, EOR},
	0x60: {"RTS", Implied, none, RTS},
	0x61: {"ADC", DirectIndexedIndirect, rd, ADC},
	0x62: {"PER", RelativeLong, none, PER},
	0x63: {"ADC", StackRelative, rd, ADC},
	0x64: {"STZ", Direct, wr, STZ},
	0x65: {"ADC", Direct, rd, ADC},
	0x66: {"ROR", Direct, rmw, ROR},
	0x67: {"ADC", DirectIndirectLong, rd, ADC},
	0x68: {"PLA", Implied, none, PLA},
	0x69: {"ADC", ImmediateM, rd, ADC},
	0x6A: {"ROR", Accumulator, none, RORacc},
	0x6B: {"RTL", Implied, none, RTL},
	0x6C: {"JMP", AbsoluteIndirect, none, JMP},
	0x6D: {"ADC", Absolute, rd, ADC},
	0x6E: {"ROR", Absolute, rmw, ROR},
	0x6F: {"ADC", AbsoluteLong, rd, ADC},
	0x70: {"BVS", Relative, none, BVS},
	0x71: {"ADC", DirectIndirectY, rd, ADC},
	0x72: {"ADC", DirectIndirect, rd, ADC},
	0x73: {"ADC", StackRelativeIndirectY, rd, ADC},
	0x74: {"STZ", DirectX, wr, STZ},
	0x75: {"ADC", DirectX, rd, ADC},
	0x76: {"ROR", DirectX, rmw, ROR},
	0x77: {"ADC", DirectIndirectLongY, rd, ADC},
	0x78: {"SEI", Implied, none, SEI},
	0x79: {"ADC", AbsoluteY, rd, ADC},
	0x7A: {"PLY", Implied, none, PLY},
	0x7B: {"TDC", Implied, none, TDC},
	0x7C: {"JMP", AbsoluteIndexedIndirect, none, JMP},
	0x7D: {"ADC", AbsoluteX, rd, ADC},
	0x7E: {"ROR", AbsoluteX, rmw, ROR},
	0x7F: {"ADC", AbsoluteLongX, rd, ADC},
	0x80: {"BRA", Relative, none, BRA},
	0x81: {"STA", DirectIndexedIndirect, wr, STA},
	0x82: {"BRL", RelativeLong, none, BRL},
	0x83: {"STA", StackRelative, wr, STA},
	0x84: {"STY", Direct, wr, STY},
	0x85: {"STA", Direct, wr, STA},
	0x86: {"STX", Direct, wr, STX},
	0x87: {"STA", DirectIndirectLong, wr, STA},
	0x88: {"DEY", Implied, none, DEY},
	0x89: {"BIT", ImmediateM, rd, BITimm},
	0x8A: {"TXA", Implied, none, TXA},
	0x8B: {"PHB", Implied, none, PHB},
	0x8C: {"STY", Absolute, wr, STY},
	0x8D: {"STA", Absolute, wr, STA},
	0x8E: {"STX", Absolute, wr, STX},
	0x8F: {"STA", AbsoluteLong, wr, STA},
	0x90: {"BCC", Relative, none, BCC},
	0x91: {"STA", DirectIndirectY, wr, STA},
	0x92: {"STA", DirectIndirect, wr, STA},
	0x93: {"STA", StackRelativeIndirectY, wr, STA},
	0x94: {"STY", DirectX, wr, STY},
	0x95: {"STA", DirectX, wr, STA},
	0x96: {"STX", DirectY, wr, STX},
	0x97: {"STA", DirectIndirectLongY, wr, STA},
	0x98: {"TYA", Implied, none, TYA},
	0x99: {"STA", AbsoluteY, wr, STA},
	0x9A: {"TXS", Implied, none, TXS},
	0x9B: {"TXY", Implied, none, TXY},
	0x9C: {"STZ", Absolute, wr, STZ},
	0x9D: {"STA", AbsoluteX, wr, STA},
	0x9E: {"STZ", AbsoluteX, wr, STZ},
	0x9F: {"STA", AbsoluteLongX, wr, STA},
	0xA0: {"LDY", ImmediateX, rd, LDY},
	0xA1: {"LDA", DirectIndexedIndirect, rd, LDA},
	0xA2: {"LDX", ImmediateX, rd, LDX},
	0xA3: {"LDA", StackRelative, rd, LDA},
	0xA4: {"LDY", Direct, rd, LDY},
	0xA5: {"LDA", Direct, rd, LDA},
	0xA6: {"LDX", Direct, rd, LDX},
	0xA7: {"LDA", DirectIndirectLong, rd, LDA},
	0xA8: {"TAY", Implied, none, TAY},
	0xA9: {"LDA", ImmediateM, rd, LDA},
	0xAA: {"TAX", Implied, none, TAX},
	0xAB: {"PLB", Implied, none, PLB},
	0xAC: {"LDY", Absolute, rd, LDY},
	0xAD: {"LDA", Absolute, rd, LDA},
	0xAE: {"LDX", Absolute, rd, LDX},
	0xAF: {"LDA", AbsoluteLong, rd, LDA},
	0xB0: {"BCS", Relative, none, BCS},
	0xB1: {"LDA", DirectIndirectY, rd, LDA},
	0xB2: {"LDA", DirectIndirect, rd, LDA},
	0xB3: {"LDA", StackRelativeIndirectY, rd, LDA},
	0xB4: {"LDY", DirectX, rd, LDY},
	0xB5: {"LDA", DirectX, rd, LDA},
	0xB6: {"LDX", DirectY, rd, LDX},
	0xB7: {"LDA", DirectIndirectLongY, rd, LDA},
	0xB8: {"CLV", Implied, none, CLV},
	0xB9: {"LDA", AbsoluteY, rd, LDA},
	0xBA: {"TSX", Implied, none, TSX},
	0xBB: {"TYX", Implied, none, TYX},
	0xBC: {"LDY", AbsoluteX, rd, LDY},
	0xBD: {"LDA", AbsoluteX, rd, LDA},
	0xBE: {"LDX", AbsoluteY, rd, LDX},
	0xBF: {"LDA", AbsoluteLongX, rd, LDA},
	0xC0: {"CPY", ImmediateX, rd, CPY},
	0xC1: {"CMP", DirectIndexedIndirect, rd, CMP},
	0xC2: {"REP", Immediate8, none, REP},
	0xC3: {"CMP", StackRelative, rd, CMP},
	0xC4: {"CPY", Direct, rd, CPY},
	0xC5: {"CMP", Direct, rd, CMP},
	0xC6: {"DEC", Direct, rmw, DEC},
	0xC7: {"CMP", DirectIndirectLong, rd, CMP},
	0xC8: {"INY", Implied, none, INY},
	0xC9: {"CMP", ImmediateM, rd, CMP},
	0xCA: {"DEX", Implied, none, DEX},
	0xCB: {"WAI", Implied, none, WAI},
	0xCC: {"CPY", Absolute, rd, CPY},
	0xCD: {"CMP", Absolute, rd, CMP},
	0xCE: {"DEC", Absolute, rmw, DEC},
	0xCF: {"CMP", AbsoluteLong, rd, CMP},
	0xD0: {"BNE", Relative, none, BNE},
	0xD1: {"CMP", DirectIndirectY, rd, CMP},
	0xD2: {"CMP", DirectIndirect, rd, CMP},
	0xD3: {"CMP", StackRelativeIndirectY, rd, CMP},
	0xD4: {"PEI", DirectIndirect, none, PEI},
	0xD5: {"CMP", DirectX, rd, CMP},
	0xD6: {"DEC", DirectX, rmw, DEC},
	0xD7: {"CMP", DirectIndirectLongY, rd, CMP},
	0xD8: {"CLD", Implied, none, CLD},
	0xD9: {"CMP", AbsoluteY, rd, CMP},
	0xDA: {"PHX", Implied, none, PHX},
	0xDB: {"STP", Implied, none, STP},
	0xDC: {"JML", AbsoluteIndirectLong, none, JML},
	0xDD: {"CMP", AbsoluteX, rd, CMP},
	0xDE: {"DEC", AbsoluteX, rmw, DEC},
	0xDF: {"CMP", AbsoluteLongX, rd, CMP},
	0xE0: {"CPX", ImmediateX, rd, CPX},
	0xE1: {"SBC", DirectIndexedIndirect, rd, SBC},
	0xE2: {"SEP", Immediate8, none, SEP},
	0xE3: {"SBC", StackRelative, rd, SBC},
	0xE4: {"CPX", Direct, rd, CPX},
	0xE5: {"SBC", Direct, rd, SBC},
	0xE6: {"INC", Direct, rmw, INC},
	0xE7: {"SBC", DirectIndirectLong, rd, SBC},
	0xE8: {"INX", Implied, none, INX},
	0xE9: {"SBC", ImmediateM, rd, SBC},
	0xEA: {"NOP", Implied, none, NOP},
	0xEB: {"XBA", Implied, none, XBA},
	0xEC: {"CPX", Absolute, rd, CPX},
	0xED: {"SBC", Absolute, rd, SBC},
	0xEE: {"INC", Absolute, rmw, INC},
	0xEF: {"SBC", AbsoluteLong, rd, SBC},
	0xF0: {"BEQ", Relative, none, BEQ},
	0xF1: {"SBC", DirectIndirectY, rd, SBC},
	0xF2: {"SBC", DirectIndirect, rd, SBC},
	0xF3: {"SBC", StackRelativeIndirectY, rd, SBC},
	0xF4: {"PEA", Immediate16, none, PEA},
	0xF5: {"SBC", DirectX, rd, SBC},
	0xF6: {"INC", DirectX, rmw, INC},
	0xF7: {"SBC", DirectIndirectLongY, rd, SBC},
	0xF8: {"SED", Implied, none, SED},
	0xF9: {"SBC", AbsoluteY, rd, SBC},
	0xFA: {"PLX", Implied, none, PLX},
	0xFB: {"XCE", Implied, none, XCE},
	0xFC: {"JSR", AbsoluteIndexedIndirect, none, JSRind},
	0xFD: {"SBC", AbsoluteX, rd, SBC},
	0xFE: {"INC", AbsoluteX, rmw, INC},
	0xFF: {"SBC", AbsoluteLongX, rd, SBC},
}
