// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package cpu

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log"
	"maps"
	"math"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"
)

// Macro represents a macro definition in the assembly language.
type Macro struct {
	LineNo int      // Line number of the macro definition.
	Args   []string // Arguments for the macro.
	Lines  []string // Lines of macro text to expand.
}

// Predefined system equates
var sysEquate = map[string]string{
	"LINENO":           "0",
	"INSTRUCTION_SIZE": fmt.Sprintf("%d", INSTRUCTION_SIZE),
}

// Assembler is a single pass macro assembler for the M88000.
//
// Operands are separated by commas or spaces. Branch targets may be
// labels, which are linked after the whole source has been read.
type Assembler struct {
	Verbose    bool        // If set, verbosely logs the assembler actions.
	Statements []Statement // List of generated statements.

	predefine map[string]string   // Predefines
	Label     map[string]uint32   // Map of labels to addresses.
	Equate    map[string]string   // Map of equates.
	Macro     map[string](*Macro) // Map of macros.
}

// Predefine defines a new equate or redefines an existing equate.
func (asm *Assembler) Predefine(equ string, value string) {
	if asm.predefine == nil {
		asm.predefine = map[string]string{equ: value}
	} else {
		asm.predefine[equ] = value
	}
}

// opcodeMap maps mnemonics to opcodes.
var opcodeMap = map[string]Opcode{}

// cacheOpMap maps cache operation names to selectors.
var cacheOpMap = map[string]CacheOp{}

func init() {
	for op := range Opcodes() {
		opcodeMap[op.String()] = op
	}

	for sel := CACHE_OP_INVALIDATE; sel <= CACHE_OP_CLEAR_LOCK; sel++ {
		cacheOpMap[sel.String()] = sel
	}
}

// operand is the kind of an assembly operand.
type operand int

const (
	operandD operand = iota
	operandS1
	operandS2
	operandImm
	operandOffset
	operandTarget
	operandVector
	operandSelect
)

// formatOperands lists the operands of each format, in source order.
var formatOperands = map[Format][]operand{
	FORMAT_NONE:         nil,
	FORMAT_D:            {operandD},
	FORMAT_S1:           {operandS1},
	FORMAT_S1_S2:        {operandS1, operandS2},
	FORMAT_D_S1:         {operandD, operandS1},
	FORMAT_D_S1_S2:      {operandD, operandS1, operandS2},
	FORMAT_D_S1_IMM:     {operandD, operandS1, operandImm},
	FORMAT_D_S1_S2_IMM:  {operandD, operandS1, operandS2, operandImm},
	FORMAT_D_S1_OFFSET:  {operandD, operandS1, operandOffset},
	FORMAT_S1_S2_OFFSET: {operandS1, operandS2, operandTarget},
	FORMAT_VECTOR:       {operandVector},
	FORMAT_SELECT:       {operandSelect},
}

// valueOf returns the value of a simple word.
func (asm *Assembler) valueOf(word string) (value int64, err error) {
	invert := false
	if strings.HasPrefix(word, "~") {
		invert = true
		word = word[1:]
	}
	if len(word) == 0 {
		err = ErrParseNumber(word)
		return
	}
	if word[0] == '\'' {
		// Character quotes should have been expanded into
		// values in parseLine()
		err = ErrParseCharacter(strings.Trim(word, "'"))
		return
	}
	value, err = strconv.ParseInt(word, 0, 64)
	if err != nil {
		err = ErrParseNumber(word)
		return
	}

	if invert {
		value = ^value
	}

	return
}

// register decodes a register name, r0 through r31.
func (asm *Assembler) register(word string) (index int, err error) {
	name, ok := strings.CutPrefix(strings.ToLower(word), "r")
	if !ok {
		err = ErrRegisterInvalid
		return
	}

	index, err = strconv.Atoi(name)
	if err != nil || index < 0 || index >= REGISTER_COUNT {
		err = ErrRegisterInvalid
		return
	}

	return
}

// immediate decodes a 16-bit immediate. Values up to 0xffff are accepted
// as their 16-bit pattern.
func (asm *Assembler) immediate(word string) (imm int16, err error) {
	value, err := asm.valueOf(word)
	if err != nil {
		return
	}

	if value < math.MinInt16 || value > math.MaxUint16 {
		err = ErrImmediateRange
		return
	}

	imm = int16(uint16(value))
	return
}

// offset decodes a signed 16-bit offset.
func (asm *Assembler) offset(word string) (offset int16, err error) {
	value, err := asm.valueOf(word)
	if err != nil {
		return
	}

	if value < math.MinInt16 || value > math.MaxInt16 {
		err = ErrOffsetRange
		return
	}

	offset = int16(value)
	return
}

// vector decodes a trap vector number.
func (asm *Assembler) vector(word string) (vector uint8, err error) {
	value, err := asm.valueOf(word)
	if err != nil {
		return
	}

	if value < 0 || value > math.MaxUint8 {
		err = ErrVectorRange
		return
	}

	vector = uint8(value)
	return
}

// cacheOp decodes a cache operation, by name or number.
func (asm *Assembler) cacheOp(word string) (sel CacheOp, err error) {
	sel, ok := cacheOpMap[strings.ToLower(word)]
	if ok {
		return
	}

	value, err := asm.valueOf(word)
	if err != nil {
		return
	}

	if value < int64(CACHE_OP_INVALIDATE) || value > int64(CACHE_OP_CLEAR_LOCK) {
		err = ErrCacheOpInvalid
		return
	}

	sel = CacheOp(value)
	return
}

// parenEval does compile-time $(...) evaluations
func (asm *Assembler) parenEval(expr string) (value int64, err error) {
	thread := starlark.Thread{}
	opts := syntax.FileOptions{}
	pred := starlark.StringDict{}
	for key, str := range asm.Equate {
		var number int64
		number, err = asm.valueOf(str)
		if err != nil {
			// Ignore non-integer equates. They may be registers
			// or something else.
			continue
		}
		pred[key] = starlark.MakeInt64(number)
	}
	err = nil
	for key, pc := range asm.Label {
		pred[key] = starlark.MakeUint(uint(pc))
	}
	prog := "rc=" + expr + "\n"
	dict, err := starlark.ExecFileOptions(&opts, &thread, "expr", prog, pred)
	if err != nil {
		return
	}
	st_rc, ok := dict["rc"]
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	st_int, ok := st_rc.(starlark.Int)
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	value, ok = st_int.Int64()
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	return
}

// splitWords splits a line on spaces and commas.
func splitWords(line string) []string {
	return strings.FieldsFunc(line, func(r rune) bool {
		return r == ' ' || r == '\t' || r == ','
	})
}

// parseLine parses a single line as an opcode.
func (asm *Assembler) parseLine(line string, lineno int) (words []string, err error) {
	// Set line number.
	asm.Equate["LINENO"] = fmt.Sprintf("%v", lineno)

	// Do 'x' evaluations
	re := regexp.MustCompile(`'\\?[^']'`)
	line = re.ReplaceAllStringFunc(line, func(word string) string {
		str := word[1 : len(word)-1]
		if str[0] == '\\' {
			str = str[1:]
			switch str {
			case "\\":
				str = "\\"
			case "n":
				str = "\n"
			case "r":
				str = "\r"
			case "t":
				str = "\t"
			case "0":
				str = "\000"
			default:
				return word
			}
		} else if len(str) != 1 {
			return word
		}
		return fmt.Sprintf("%v", str[0])
	})

	// Do $() evaluations
	re = regexp.MustCompile(`\$\([^\$]*\)`)
	line = re.ReplaceAllStringFunc(line, func(str string) string {
		value, _err := asm.parenEval(str[2 : len(str)-1])
		if _err != nil {
			err = _err
		}
		return fmt.Sprintf("%d", value)
	})
	if err != nil {
		return
	}

	words = splitWords(line)

	if len(words) == 0 {
		return
	}

	// .equ CONST VALUE
	if words[0] == ".equ" {
		if len(words) != 3 {
			err = ErrEquateSyntax
			return
		}
		_, ok := asm.Equate[words[1]]
		if ok {
			err = ErrEquateDuplicate
			return
		}
		asm.Equate[words[1]] = words[2]
		words = words[:0]
		return
	}

	for n, word := range words {
		// Check for equate next
		equate, ok := asm.Equate[word]
		if ok {
			words[n] = equate
		}
	}

	for strings.HasSuffix(words[0], ":") {
		label := words[0][:len(words[0])-1]
		_, ok := asm.Label[label]
		if ok {
			err = ErrLabelDuplicate
			return
		}

		if asm.Label == nil {
			asm.Label = make(map[string]uint32, 16)
		}
		asm.Label[label] = asm.currentPc()
		words = words[1:]
		if len(words) == 0 {
			return
		}
	}

	// .macro processing
	macro, ok := asm.Macro[words[0]]
	if ok {
		name := words[0]

		args := words[1:]
		if len(args) != len(macro.Args) {
			err = ErrMacroSyntax
			return
		}
		// Turn args into equs
		old_equate := maps.Clone(asm.Equate)
		for n, arg := range macro.Args {
			asm.Equate[arg] = args[n]
		}
		defer func() { asm.Equate = old_equate }()

		// Local labels are unique to each expansion.
		local := fmt.Sprintf("%v_%v_", name, lineno)

		for n, line := range macro.Lines {
			lineno := macro.LineNo + n

			line = strings.ReplaceAll(line, "@", local)
			words, err = asm.parseLine(line, lineno)
			if err != nil {
				err = &ErrMacro{Macro: name, Line: lineno, Err: err}
				return
			}

			err = asm.parseWords(words, lineno)
			if err != nil {
				err = &ErrMacro{Macro: name, Line: lineno, Err: err}
				return
			}
		}

		words = nil
		return
	}

	return
}

// currentPc gets the address of the next statement.
func (asm *Assembler) currentPc() uint32 {
	return uint32(len(asm.Statements)) * INSTRUCTION_SIZE
}

// Parse parses an input stream into a Program.
func (asm *Assembler) Parse(input io.Reader) (prog *Program, err error) {
	scanner := bufio.NewScanner(input)

	var line string
	var lineno int
	var macro *Macro

	defer func() {
		var syntax *ErrSyntax
		if err != nil && !errors.As(err, &syntax) {
			err = &ErrSyntax{LineNo: lineno, Line: line, Err: err}
		}
	}()

	clear(asm.Label)
	asm.Statements = asm.Statements[:0]
	if asm.Macro == nil {
		asm.Macro = make(map[string](*Macro))
	}
	clear(asm.Macro)
	asm.Equate = maps.Clone(sysEquate)
	for attr, val := range asm.predefine {
		asm.Equate[attr] = val
	}

	for scanner.Scan() {
		text := scanner.Text()
		lineno += 1

		if asm.Verbose {
			log.Printf("%v: %v\n", lineno, text)
		}

		text_comment := strings.Split(text, ";")
		line = strings.TrimSpace(text_comment[0])
		words := splitWords(line)

		// .macro NAME arg...
		if len(words) > 0 && words[0] == ".macro" {
			if macro != nil {
				err = ErrMacroNesting
				return
			}
			if len(words) < 2 {
				err = ErrMacroSyntax
				return
			}
			_, ok := asm.Macro[words[1]]
			if ok {
				err = ErrMacroDuplicate
				return
			}
			macro = &Macro{
				LineNo: lineno + 1,
			}
			if len(words) > 2 {
				macro.Args = words[2:]
			}
			asm.Macro[words[1]] = macro
			continue
		}

		if len(words) > 0 && words[0] == ".endm" {
			if macro == nil {
				err = ErrMacroLonelyEndm
				return
			}
			macro = nil
			continue
		}

		if macro != nil {
			macro.Lines = append(macro.Lines, line)
			continue
		}

		words, err = asm.parseLine(line, lineno)
		if err != nil {
			return
		}

		err = asm.parseWords(words, lineno)
		if err != nil {
			return
		}
	}

	err = scanner.Err()
	if err != nil {
		return
	}

	if macro != nil {
		err = ErrMacroLonely
		return
	}

	err = asm.link()
	if err != nil {
		return
	}

	prog = &Program{
		Statements: slices.Clone(asm.Statements),
	}

	return
}

// link resolves branch labels to offsets, reporting every failing statement.
func (asm *Assembler) link() (err error) {
	var errs []error

	for n := range asm.Statements {
		stmt := &asm.Statements[n]

		if len(stmt.LinkLabel) == 0 {
			continue
		}

		var link_err error
		pc, ok := asm.Label[stmt.LinkLabel]
		delta := int64(pc) - int64(stmt.Pc)
		switch {
		case !ok:
			link_err = ErrLabelMissing(stmt.LinkLabel)
		case delta < math.MinInt16 || delta > math.MaxInt16:
			link_err = ErrOffsetRange
		default:
			stmt.Code.Offset = int16(delta)
			continue
		}

		errs = append(errs, &ErrSyntax{
			LineNo: stmt.LineNo,
			Line:   strings.Join(stmt.Words, " "),
			Err:    link_err,
		})
	}

	err = errors.Join(errs...)

	return
}

// parseWords evaluates the words in a line of assembly text.
func (asm *Assembler) parseWords(words []string, lineno int) (err error) {
	// no-op
	if len(words) == 0 {
		return
	}

	op, ok := opcodeMap[strings.ToLower(words[0])]
	if !ok {
		err = ErrOpcodeInvalid
		return
	}

	code := Code{Opcode: op}
	var label string

	args := words[1:]
	operands := formatOperands[op.Format()]
	if len(args) < len(operands) {
		err = ErrOpcodeValueMissing
		return
	}
	if len(args) > len(operands) {
		err = ErrOpcodeExtraArgs
		return
	}

	for n, kind := range operands {
		word := args[n]
		switch kind {
		case operandD:
			code.D, err = asm.register(word)
		case operandS1:
			code.S1, err = asm.register(word)
		case operandS2:
			code.S2, err = asm.register(word)
		case operandImm:
			code.Imm, err = asm.immediate(word)
		case operandOffset:
			code.Offset, err = asm.offset(word)
		case operandTarget:
			_, numErr := asm.valueOf(word)
			if numErr == nil {
				code.Offset, err = asm.offset(word)
			} else {
				label = word
			}
		case operandVector:
			code.Vector, err = asm.vector(word)
		case operandSelect:
			code.Select, err = asm.cacheOp(word)
		}
		if err != nil {
			return
		}
	}

	asm.Statements = append(asm.Statements, Statement{
		LineNo:    lineno,
		Pc:        asm.currentPc(),
		Words:     slices.Clone(words),
		Code:      code,
		LinkLabel: label,
	})

	return
}
