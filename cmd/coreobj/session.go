package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"strconv"
	"strings"

	"github.com/mgomes/coreobject/coreobj"
	"github.com/mgomes/coreobject/internal/hierarchy"
)

var errUsage = errors.New("usage")

// session evaluates the line-oriented command language shared by the REPL and
// batch mode.
type session struct {
	registry *hierarchy.Registry
	vars     map[string]*coreobj.Object
	logger   *slog.Logger
}

func newSession(registry *hierarchy.Registry, logger *slog.Logger) *session {
	if registry == nil {
		registry = hierarchy.NewRegistry()
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &session{
		registry: registry,
		vars:     make(map[string]*coreobj.Object),
		logger:   logger,
	}
}

func (s *session) reset() {
	s.registry = hierarchy.NewRegistry()
	s.vars = make(map[string]*coreobj.Object)
}

func (s *session) eval(line string) (string, error) {
	words, err := splitWords(line)
	if err != nil {
		return "", err
	}
	if len(words) == 0 {
		return "", nil
	}
	s.logger.Debug("eval", "command", words[0], "args", len(words)-1)

	switch words[0] {
	case "extend":
		return s.extend(words[1:])
	case "create":
		return s.create(words[1:])
	case "get":
		return s.get(words[1:])
	case "set":
		return s.set(words[1:])
	case "call":
		return s.call(words[1:])
	case "show":
		return s.show(words[1:])
	case "classes":
		return s.describeClasses(), nil
	default:
		return "", fmt.Errorf("unknown command %q", words[0])
	}
}

// extend Child Parent [name=value ...]; init=a,b declares a field
// initializer and name=@field declares a getter.
func (s *session) extend(args []string) (string, error) {
	if len(args) < 2 {
		return "", fmt.Errorf("%w: extend <Name> <Parent> [member=value ...]", errUsage)
	}
	members := make(coreobj.Members)
	for _, def := range args[2:] {
		key, raw, ok := strings.Cut(def, "=")
		if !ok || key == "" {
			return "", fmt.Errorf("member %q: expected name=value", def)
		}
		switch {
		case key == coreobj.InitKey:
			members[key] = coreobj.FieldInit(strings.Split(raw, ",")...)
		case strings.HasPrefix(raw, "@") && len(raw) > 1:
			members[key] = coreobj.Getter(raw[1:])
		default:
			members[key] = parseLiteral(raw)
		}
	}
	cl, err := s.registry.Define(args[0], args[1], members)
	if err != nil {
		return "", err
	}
	s.logger.Info("class defined", "name", cl.Name(), "parent", cl.Parent().Name(), "id", cl.ID())
	return cl.String(), nil
}

func (s *session) create(args []string) (string, error) {
	if len(args) < 2 {
		return "", fmt.Errorf("%w: create <var> <Class> [args ...]", errUsage)
	}
	cl, ok := s.registry.Lookup(args[1])
	if !ok {
		return "", fmt.Errorf("%w %s", hierarchy.ErrUnknownClass, args[1])
	}
	inst, err := cl.Create(parseLiterals(args[2:])...)
	if err != nil {
		return "", err
	}
	s.vars[args[0]] = inst
	return inst.String(), nil
}

func (s *session) lookupVar(name string) (*coreobj.Object, error) {
	inst, ok := s.vars[name]
	if !ok {
		return nil, fmt.Errorf("undefined variable %s", name)
	}
	return inst, nil
}

func (s *session) get(args []string) (string, error) {
	if len(args) != 2 {
		return "", fmt.Errorf("%w: get <var> <member>", errUsage)
	}
	inst, err := s.lookupVar(args[0])
	if err != nil {
		return "", err
	}
	val, ok := inst.Get(args[1])
	if !ok {
		return "undefined", nil
	}
	return formatValue(val), nil
}

func (s *session) set(args []string) (string, error) {
	if len(args) != 3 {
		return "", fmt.Errorf("%w: set <var> <member> <value>", errUsage)
	}
	inst, err := s.lookupVar(args[0])
	if err != nil {
		return "", err
	}
	val := parseLiteral(args[2])
	inst.Set(args[1], val)
	return formatValue(val), nil
}

func (s *session) call(args []string) (string, error) {
	if len(args) < 2 {
		return "", fmt.Errorf("%w: call <var> <method> [args ...]", errUsage)
	}
	inst, err := s.lookupVar(args[0])
	if err != nil {
		return "", err
	}
	val, err := inst.Call(args[1], parseLiterals(args[2:])...)
	if err != nil {
		return "", err
	}
	return formatValue(val), nil
}

func (s *session) show(args []string) (string, error) {
	if len(args) != 1 {
		return "", fmt.Errorf("%w: show <var>", errUsage)
	}
	inst, err := s.lookupVar(args[0])
	if err != nil {
		return "", err
	}
	raw, err := jsonAPI.Marshal(inst)
	if err != nil {
		return "", fmt.Errorf("encode %s: %w", args[0], err)
	}
	return string(raw), nil
}

func (s *session) describeClasses() string {
	lines := make([]string, 0, len(s.registry.Names()))
	for _, name := range s.registry.Names() {
		cl, _ := s.registry.Lookup(name)
		lines = append(lines, classChain(cl))
	}
	return strings.Join(lines, "\n")
}

func (s *session) varNames() []string {
	names := make([]string, 0, len(s.vars))
	for name := range s.vars {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// classChain renders cl followed by its ancestors, e.g. "Horse < Animal < CoreObject".
func classChain(cl *coreobj.Class) string {
	var parts []string
	for cur := cl; cur != nil; cur = cur.Parent() {
		parts = append(parts, cur.Name())
	}
	return strings.Join(parts, " < ")
}

func formatValue(val coreobj.Value) string {
	switch val.Kind() {
	case coreobj.KindNil:
		return "nil"
	case coreobj.KindString:
		return strconv.Quote(val.String())
	default:
		return val.String()
	}
}

func parseLiterals(raw []string) []coreobj.Value {
	out := make([]coreobj.Value, len(raw))
	for i, r := range raw {
		out[i] = parseLiteral(r)
	}
	return out
}

// parseLiteral reads nil, booleans, numbers and double-quoted strings;
// anything else is a bare string.
func parseLiteral(raw string) coreobj.Value {
	switch raw {
	case "nil":
		return coreobj.NewNil()
	case "true":
		return coreobj.NewBool(true)
	case "false":
		return coreobj.NewBool(false)
	}
	if len(raw) >= 2 && strings.HasPrefix(raw, `"`) && strings.HasSuffix(raw, `"`) {
		if unquoted, err := strconv.Unquote(raw); err == nil {
			return coreobj.NewString(unquoted)
		}
	}
	if i, err := strconv.ParseInt(raw, 10, 64); err == nil {
		return coreobj.NewInt(i)
	}
	if f, err := strconv.ParseFloat(raw, 64); err == nil {
		return coreobj.NewFloat(f)
	}
	return coreobj.NewString(raw)
}

// splitWords splits on whitespace outside double quotes. Quotes are kept so
// parseLiteral can tell "42" from 42.
func splitWords(line string) ([]string, error) {
	var (
		words   []string
		current strings.Builder
		inQuote bool
		escaped bool
	)
	flush := func() {
		if current.Len() > 0 {
			words = append(words, current.String())
			current.Reset()
		}
	}
	for _, r := range line {
		switch {
		case escaped:
			escaped = false
		case inQuote && r == '\\':
			escaped = true
		case r == '"':
			inQuote = !inQuote
		case !inQuote && (r == ' ' || r == '\t'):
			flush()
			continue
		}
		current.WriteRune(r)
	}
	if inQuote {
		return nil, errors.New("unterminated quote")
	}
	flush()
	return words, nil
}
