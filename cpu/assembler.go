// Copyright 2024, Jason S. McMullan <jason.mcmullan@gmail.com>

package cpu

import (
	"bufio"
	"fmt"
	"io"
	"maps"
	"regexp"
	"slices"
	"strconv"
	"strings"
	"unicode"

	"github.com/sirupsen/logrus"
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
	"LINENO": "0",
}

// Assembler is a two pass macro assembler for CHIP-8 programs.
//
// The first pass collects labels, equates and macros, and sizes every
// line. The second pass links labels and encodes the instructions.
type Assembler struct {
	Verbose bool               // If set, verbosely logs the assembler actions.
	Log     logrus.FieldLogger // Destination of verbose logging.
	Opcode  []Opcode           // List of generated opcodes.

	predefine map[string]string   // Predefines
	Label     map[string]uint16   // Map of labels to addresses.
	Equate    map[string]string   // Map of equates.
	Macro     map[string](*Macro) // Map of macros.

	expansion int // Count of macro expansions, for local labels.
}

// Predefine defines a new equate or redefines an existing equate.
func (asm *Assembler) Predefine(equ string, value string) {
	if asm.predefine == nil {
		asm.predefine = map[string]string{equ: value}
	} else {
		asm.predefine[equ] = value
	}
}

func (asm *Assembler) logger() logrus.FieldLogger {
	if asm.Log == nil {
		return logrus.StandardLogger()
	}
	return asm.Log
}

// literalOperands are the operand keywords of the instruction syntax.
var literalOperands = []string{"I", "DT", "ST", "K", "F", "B", "[I]"}

// mnemonicMap maps mnemonics to their candidate ops, in catalog order.
var mnemonicMap = func() (mnemonics map[string][]Op) {
	mnemonics = make(map[string][]Op)
	for ins := range Instructions() {
		stx := formMap[ins.Op]
		mnemonics[stx.Mnemonic] = append(mnemonics[stx.Mnemonic], ins.Op)
	}
	return
}()

// register returns the register index of a word such as "v3" or "VA".
func register(word string) (reg uint16, ok bool) {
	if len(word) != 2 || (word[0] != 'v' && word[0] != 'V') {
		return
	}
	value, err := strconv.ParseUint(word[1:], 16, 4)
	if err != nil {
		return
	}

	return uint16(value), true
}

// isLiteral returns true if the word is an operand keyword.
func isLiteral(word string) bool {
	return slices.ContainsFunc(literalOperands, func(lit string) bool {
		return strings.EqualFold(lit, word)
	})
}

// isSymbol returns true if the word could name a label or equate.
func isSymbol(word string) bool {
	if len(word) == 0 {
		return false
	}
	r := rune(word[0])
	return r == '_' || unicode.IsLetter(r)
}

// splitWords splits a line on spaces and commas, keeping parenthesized
// expressions intact.
func splitWords(line string) (words []string) {
	depth := 0
	start := -1
	for n, r := range line {
		switch r {
		case '(':
			depth++
		case ')':
			if depth > 0 {
				depth--
			}
		}
		if depth == 0 && (unicode.IsSpace(r) || r == ',') {
			if start >= 0 {
				words = append(words, line[start:n])
				start = -1
			}
			continue
		}
		if start < 0 {
			start = n
		}
	}
	if start >= 0 {
		words = append(words, line[start:])
	}

	return
}

// valueOf returns the value of a number, label, equate or $(...) expression.
func (asm *Assembler) valueOf(word string, here uint16) (value int64, err error) {
	switch {
	case strings.HasPrefix(word, "$(") && strings.HasSuffix(word, ")"):
		return asm.parenEval(word[2:len(word)-1], here)
	case strings.HasPrefix(word, "$") && len(word) > 1:
		value, err = strconv.ParseInt(word[1:], 16, 64)
		if err != nil {
			err = ErrParseNumber(word)
		}
		return
	}

	if address, ok := asm.Label[word]; ok {
		value = int64(address)
		return
	}

	if equate, ok := asm.Equate[word]; ok && equate != word {
		return asm.valueOf(equate, here)
	}

	value, err = strconv.ParseInt(word, 0, 64)
	if err != nil {
		if isSymbol(word) {
			err = ErrLabelMissing(word)
		} else {
			err = ErrParseNumber(word)
		}
	}

	return
}

// parenEval does $(...) evaluations, with the labels and numeric
// equates as predeclared values.
func (asm *Assembler) parenEval(expr string, here uint16) (value int64, err error) {
	thread := starlark.Thread{}
	opts := syntax.FileOptions{}
	pred := starlark.StringDict{}
	for key, str := range asm.Equate {
		if !isSymbol(key) {
			continue
		}
		v64, _err := strconv.ParseInt(str, 0, 64)
		if _err != nil {
			// Ignore non-integer equates. They may be registers
			// or something else.
			continue
		}
		pred[key] = starlark.MakeInt64(v64)
	}
	for key, address := range asm.Label {
		if isSymbol(key) {
			pred[key] = starlark.MakeInt(int(address))
		}
	}
	pred["HERE"] = starlark.MakeInt(int(here))

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

// currentAddress gets the address of the next generated byte.
func (asm *Assembler) currentAddress() uint16 {
	if len(asm.Opcode) == 0 {
		return PROGRAM_START
	}

	last := asm.Opcode[len(asm.Opcode)-1]

	return last.Address + uint16(len(last.Data))
}

var charQuote = regexp.MustCompile(`'\\?[^']'`)

// parseLine parses a single line, defining its labels and equates,
// expanding macros, and sizing its opcode.
func (asm *Assembler) parseLine(line string, lineno int) (err error) {
	// Set line number.
	asm.Equate["LINENO"] = fmt.Sprintf("%v", lineno)

	// Do 'x' evaluations
	line = charQuote.ReplaceAllStringFunc(line, func(word string) string {
		str := word[1 : len(word)-1]
		if str[0] == '\\' {
			str = str[1:]
			switch str {
			case "\\":
				str = "\\"
			case "'":
				str = "'"
			default:
				return word
			}
		} else if len(str) != 1 {
			return word
		}
		return fmt.Sprintf("%v", str[0])
	})

	words := splitWords(line)
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
		value := words[2]
		if equate, ok := asm.Equate[value]; ok {
			value = equate
		}
		if _, ok := register(value); !ok {
			var v64 int64
			v64, err = asm.valueOf(value, asm.currentAddress())
			if err != nil {
				return
			}
			value = fmt.Sprintf("%d", v64)
		}
		asm.Equate[words[1]] = value
		return
	}

	for n, word := range words {
		// Check for equate next
		equate, ok := asm.Equate[word]
		if ok {
			words[n] = equate
		}
		// Evaluate expressions early, so that macro arguments are
		// visible. Forward references are left for linking.
		if strings.HasPrefix(words[n], "$(") {
			value, _err := asm.valueOf(words[n], asm.currentAddress())
			if _err == nil {
				words[n] = fmt.Sprintf("%d", value)
			}
		}
	}

	for strings.HasSuffix(words[0], ":") {
		label := words[0][:len(words[0])-1]
		_, ok := asm.Label[label]
		if ok {
			err = ErrLabelDuplicate
			return
		}

		asm.Label[label] = asm.currentAddress()
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

		// '@' prefixes labels local to this expansion.
		asm.expansion++
		local := fmt.Sprintf("%v_%v_", name, asm.expansion)

		for n, line := range macro.Lines {
			lineno := macro.LineNo + n

			line = strings.ReplaceAll(line, "@", local)
			err = asm.parseLine(line, lineno)
			if err != nil {
				err = &ErrMacro{Macro: name, Line: lineno, Err: err}
				return
			}
		}

		return
	}

	err = asm.parseWords(words, lineno)
	return
}

// parseWords sizes the opcode of a line of words.
func (asm *Assembler) parseWords(words []string, lineno int) (err error) {
	op := Opcode{
		LineNo:  lineno,
		Address: asm.currentAddress(),
		Words:   slices.Clone(words),
	}

	switch directive := words[0]; {
	case directive == ".byte":
		if len(words) < 2 {
			err = ErrByteSyntax
			return
		}
		op.Data = make([]byte, len(words)-1)
	case directive == ".word":
		if len(words) < 2 {
			err = ErrByteSyntax
			return
		}
		op.Data = make([]byte, WORD_SIZE*(len(words)-1))
	case strings.HasPrefix(directive, "."):
		err = ErrDirectiveUnknown
		return
	default:
		if _, ok := mnemonicMap[strings.ToLower(directive)]; !ok {
			err = ErrMnemonic(directive)
			return
		}
		op.Data = make([]byte, WORD_SIZE)
		op.Code = true
	}

	if int(op.Address)+len(op.Data) > MEMORY_SIZE {
		err = ErrProgramTooLarge
		return
	}

	asm.Opcode = append(asm.Opcode, op)
	return
}

// Parse parses an input stream into a Program.
func (asm *Assembler) Parse(input io.Reader) (prog *Program, err error) {
	scanner := bufio.NewScanner(input)

	var line string
	var lineno int
	var macro *Macro

	defer func() {
		if err != nil {
			err = &ErrSyntax{LineNo: lineno, Line: line, Err: err}
		}
	}()

	asm.Label = make(map[string]uint16, 16)
	asm.Opcode = asm.Opcode[:0]
	asm.Macro = make(map[string](*Macro))
	asm.expansion = 0
	asm.Equate = maps.Clone(sysEquate)
	maps.Copy(asm.Equate, _cpu_defines)
	maps.Copy(asm.Equate, asm.predefine)

	for scanner.Scan() {
		text := scanner.Text()
		lineno += 1

		if asm.Verbose {
			asm.logger().WithField("line", lineno).Info(text)
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

		err = asm.parseLine(line, lineno)
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

	// Final linking of labels and encoding.
	for n := range asm.Opcode {
		op := &asm.Opcode[n]
		lineno = op.LineNo
		line = strings.Join(op.Words, " ")

		asm.Equate["LINENO"] = fmt.Sprintf("%v", lineno)
		err = asm.link(op)
		if err != nil {
			return
		}
	}

	prog = &Program{
		Opcodes: slices.Clone(asm.Opcode),
	}

	return
}

// link resolves the values of an opcode's words into its data.
func (asm *Assembler) link(op *Opcode) (err error) {
	switch op.Words[0] {
	case ".byte":
		for n, word := range op.Words[1:] {
			var value int64
			value, err = asm.valueOf(word, op.Address)
			if err != nil {
				return
			}
			if value < -0x80 || value > 0xff {
				err = ErrArgument
				return
			}
			op.Data[n] = uint8(value)
		}
	case ".word":
		for n, word := range op.Words[1:] {
			var value int64
			value, err = asm.valueOf(word, op.Address)
			if err != nil {
				return
			}
			if value < -0x8000 || value > 0xffff {
				err = ErrArgument
				return
			}
			op.Data[n*WORD_SIZE] = uint8(value >> 8)
			op.Data[n*WORD_SIZE+1] = uint8(value)
		}
	default:
		var word uint16
		word, err = asm.encode(op.Words, op.Address)
		if err != nil {
			return
		}
		op.Data[0] = uint8(word >> 8)
		op.Data[1] = uint8(word)
	}

	return
}

// encode assembles an instruction from its mnemonic and operands.
func (asm *Assembler) encode(words []string, here uint16) (word uint16, err error) {
	mnemonic := strings.ToLower(words[0])
	operands := words[1:]

	var most int
	least := -1
	for _, op := range mnemonicMap[mnemonic] {
		patterns := formMap[op].Operands

		var args []uint16
		var ok bool
		args, ok, err = asm.matchOperands(patterns, operands, here)
		if err != nil {
			return
		}
		if ok {
			return Encode(op, args...)
		}

		most = max(most, len(patterns))
		if least < 0 || len(patterns) < least {
			least = len(patterns)
		}
	}

	switch {
	case len(operands) > most:
		err = ErrOpcodeExtraArgs
	case len(operands) < least:
		err = ErrOpcodeMissing
	default:
		err = ErrOperandInvalid
	}

	return
}

// matchOperands matches operands to an instruction's operand patterns,
// returning the argument values in catalog order.
func (asm *Assembler) matchOperands(patterns []string, operands []string, here uint16) (args []uint16, ok bool, err error) {
	count := len(patterns)
	optional := count > 0 && strings.HasSuffix(patterns[count-1], "?")
	if len(operands) != count && !(optional && len(operands) == count-1) {
		return
	}

	var x uint16
	for n, pattern := range patterns {
		pattern = strings.TrimSuffix(pattern, "?")
		if n >= len(operands) {
			// An omitted Vy is Vx.
			args = append(args, x)
			continue
		}

		word := operands[n]
		reg, is_reg := register(word)

		switch pattern {
		case "Vx", "Vy":
			if !is_reg {
				return
			}
			if pattern == "Vx" {
				x = reg
			}
			args = append(args, reg)
		case "V0":
			if !is_reg || reg != 0 {
				return
			}
		case "addr", "byte", "nibble":
			if is_reg || isLiteral(word) {
				return
			}
			var value int64
			value, err = asm.valueOf(word, here)
			if err != nil {
				return
			}
			if pattern == "byte" && value < 0 && value >= -0x80 {
				value &= 0xff
			}
			if value < 0 || value > 0xffff {
				err = ErrArgument
				return
			}
			args = append(args, uint16(value))
		default:
			if !strings.EqualFold(word, pattern) {
				return
			}
		}
	}

	ok = true
	return
}
