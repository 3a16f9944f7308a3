// Copyright 2024, Jason S. McMullan <jason.mcmullan@gmail.com>

package cpu

// memory addresses core[MA].
func memory(m Micro) Micro {
	m.Address = true
	m.AddrMA = true
	return m
}

// jmsTail stores PC at core[MA] and continues at MA + 1.
func jmsTail(step uint8) (m Micro, ok bool) {
	ok = true
	switch step {
	case 2:
		m = Micro{
			Next:    instruction(3),
			Address: true,
			Select:  SELECT_CROSS,
			Latch:   LATCH_MB,
			LatchOB: true,
		}
	case 3:
		m = memory(Micro{
			Next:   instruction(4),
			Select: SELECT_ALU,
			Alu:    ALU_OR,
			Latch:  LATCH_CORE,
		})
	case 4:
		m = memory(Micro{
			Next:     stateFetch,
			Select:   SELECT_CROSS,
			Constant: true,
			Latch:    LATCH_PC,
			Extended: true,
		})
	default:
		ok = false
	}
	return
}

// arithmetic loads core[MA] into MB, AC into OB, and combines them into AC.
func arithmetic(step uint8, op AluOp, link LinkOp, ones bool) (m Micro, ok bool) {
	ok = true
	switch step {
	case 2:
		m = memory(Micro{Next: instruction(3), Select: SELECT_CORE, Latch: LATCH_MB})
	case 3:
		m = Micro{Next: instruction(4), Select: SELECT_AC, LatchOB: true}
	case 4:
		m = Micro{
			Next:    stateFetch,
			Select:  SELECT_ALU,
			Alu:     op,
			Link:    link,
			Ones:    ones,
			Latch:   LATCH_AC,
			LatchOB: true,
		}
	default:
		ok = false
	}
	return
}

func decodeInstruction(in Input) (m Micro, ok bool) {
	step := uint8(in & IN_INS_STEP)
	op := in.Opcode()
	indirect := in.Has(IN_INS_INDIRECT)
	extend := in.Has(IN_INS_EXTEND)

	if op.Indirectable() {
		switch {
		case step == INS_BEGIN && !indirect:
			// Direct references already hold the effective address.
			step = INS_INDIR_DONE
		case step == INS_BEGIN && in.Has(IN_INS_MAAI):
			m = memory(Micro{
				Next:     instruction(INS_INDEX_INC),
				ZeroPage: true,
				Select:   SELECT_CORE,
				Latch:    LATCH_MB,
				LatchOB:  true,
			})
			ok = true
			return
		case step == INS_BEGIN:
			m = memory(Micro{
				Next:     instruction(INS_INDIR_DONE),
				Select:   SELECT_CORE,
				Latch:    LATCH_MA | LATCH_MB,
				Extended: extend,
			})
			ok = true
			return
		case step == INS_INDEX_INC:
			m = memory(Micro{
				Next:     instruction(INS_INDIR_DONE),
				ZeroPage: true,
				Select:   SELECT_ALU,
				Alu:      ALU_OR,
				Ones:     true,
				Latch:    LATCH_CORE | LATCH_MA,
				Extended: extend,
			})
			ok = true
			return
		}
	}

	ok = true
	switch op {
	case OP_CAL:
		switch step {
		case 0:
			// MA = CAL_VECTOR
			m = Micro{
				Next:     instruction(2),
				Select:   SELECT_CONST,
				Constant: true,
				Latch:    LATCH_MA,
				Extended: true,
			}
			if indirect {
				m.Next = instruction(1)
			}
		case 1:
			m = memory(Micro{
				Next:     instruction(2),
				Select:   SELECT_CORE,
				Latch:    LATCH_MA | LATCH_MB,
				Extended: extend,
			})
		default:
			m, ok = jmsTail(step)
		}
	case OP_JMS:
		m, ok = jmsTail(step)
	case OP_DAC:
		if step != 2 {
			ok = false
			break
		}
		m = memory(Micro{Next: stateFetch, Select: SELECT_AC, Latch: LATCH_CORE})
	case OP_DZM:
		if step != 2 {
			ok = false
			break
		}
		m = memory(Micro{Next: stateFetch, Select: SELECT_ALU, Alu: ALU_CLEAR, Latch: LATCH_CORE})
	case OP_LAC:
		if step != 2 {
			ok = false
			break
		}
		m = memory(Micro{Next: stateFetch, Select: SELECT_CORE, Latch: LATCH_AC})
	case OP_XOR:
		m, ok = arithmetic(step, ALU_XOR, LINK_KEEP, false)
	case OP_AND:
		m, ok = arithmetic(step, ALU_AND, LINK_KEEP, false)
	case OP_ADD:
		m, ok = arithmetic(step, ALU_ADD, LINK_ARITH, true)
	case OP_TAD:
		m, ok = arithmetic(step, ALU_ADD, LINK_ARITH, false)
	case OP_XCT:
		switch step {
		case 2:
			m = memory(Micro{
				Next:    instruction(3),
				Select:  SELECT_CORE,
				Latch:   LATCH_IR | LATCH_MA | LATCH_MB,
				LatchOB: true,
			})
		case 3:
			m = Micro{Next: stateExecute}
		default:
			ok = false
		}
	case OP_ISZ:
		switch step {
		case 2:
			m = memory(Micro{Next: instruction(3), Select: SELECT_CORE, Latch: LATCH_MB, LatchOB: true})
		case 3:
			m = memory(Micro{
				Next:    instruction(4),
				Select:  SELECT_ALU,
				Alu:     ALU_OR,
				Ones:    true,
				Latch:   LATCH_CORE,
				LatchOB: true,
			})
		case 4:
			m = Micro{Next: service(SRV_SKIP_ZERO)}
		default:
			ok = false
		}
	case OP_SAD:
		switch step {
		case 2:
			m = memory(Micro{Next: instruction(3), Select: SELECT_CORE, Latch: LATCH_MB})
		case 3:
			m = Micro{Next: instruction(4), Select: SELECT_AC, LatchOB: true}
		case 4:
			m = Micro{Next: instruction(5), Select: SELECT_ALU, Alu: ALU_XOR, LatchOB: true}
		case 5:
			m = Micro{Next: service(SRV_SKIP_NONZERO)}
		default:
			ok = false
		}
	case OP_JMP:
		if step != 2 {
			ok = false
			break
		}
		m = memory(Micro{Next: stateFetch, Select: SELECT_CROSS, Latch: LATCH_PC, Extended: true})
	case OP_IOT:
		if step != 0 {
			ok = false
			break
		}
		m = iotRequest(service(SRV_IOT_WAIT))
	case OP_OPR:
		switch {
		case step == 0 && indirect:
			// LAW: the instruction word is in both OB and MB.
			m = Micro{Next: stateFetch, Select: SELECT_ALU, Alu: ALU_OR, Latch: LATCH_AC}
		case step == 0:
			m = Micro{Next: instruction(1), Select: SELECT_AC, LatchOB: true}
		case step == 1:
			m = Micro{Next: operate(0), Select: SELECT_ALU, Alu: ALU_CLEAR, Latch: LATCH_MB}
		case step == 2:
			m = Micro{Next: operate(1), Select: SELECT_EMPTY, Latch: LATCH_MB}
		default:
			ok = false
		}
	default:
		// EAE is reserved.
		ok = false
	}

	return
}

func decodeOperate(in Input) (m Micro, ok bool) {
	ok = true

	if !in.Has(IN_OPR_STEP) {
		m = Micro{
			Next:    service(SRV_SKIP_OPR),
			Select:  SELECT_ALU,
			Latch:   LATCH_AC,
			LatchOB: true,
		}

		cla, cma := in.Has(IN_OPR_CLA), in.Has(IN_OPR_CMA)
		switch {
		case cla && cma:
			m.Alu = ALU_PRESET
		case cla:
			m.Alu = ALU_CLEAR
		case cma:
			m.Alu = ALU_BMA
		default:
			m.Alu = ALU_OR
		}

		link := in.Has(IN_OPR_LINK)
		cll, cml := in.Has(IN_OPR_CLL), in.Has(IN_OPR_CML)
		switch {
		case cll && cml:
			m.Link = LINK_COMPLEMENT
			if link {
				m.Link = LINK_KEEP
			}
		case cll:
			m.Link = LINK_KEEP
			if link {
				m.Link = LINK_COMPLEMENT
			}
		case cml:
			m.Link = LINK_COMPLEMENT
		default:
			m.Link = LINK_KEEP
		}

		return
	}

	m = Micro{Next: stateFetch}
	if in.Has(IN_OPR_HLT) {
		m.Next = stateHalt
	}

	ral, rar, twice := in.Has(IN_OPR_RAL), in.Has(IN_OPR_RAR), in.Has(IN_OPR_AROT)
	switch {
	case in.Has(IN_OPR_OAS):
		m.Select = SELECT_ALU
		m.Alu = ALU_OR
		m.Latch = LATCH_AC
		m.LatchOB = true
	case ral || rar:
		shift := SHIFT_RAR
		switch {
		case ral && twice:
			shift = SHIFT_RTL
		case ral:
			shift = SHIFT_RAL
		case twice:
			shift = SHIFT_RTR
		}
		m.Select = SELECT_ALU
		m.Alu = AluOp(shift)
		m.Shifter = true
		m.Link = LINK_SHIFT
		m.Latch = LATCH_AC
		m.LatchOB = true
	}

	return
}
