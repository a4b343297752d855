package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/typedef-go/typedef"
	ilelog "github.com/typedef-go/typedef/internal/log"
	"github.com/typedef-go/typedef/types"
)

// CheckCmd runs a YAML fixture of type/value/want cases against the
// catalog, grounded on BuildCmd's flag/RunE shape.
var CheckCmd = &cobra.Command{
	Use:          "check fixture.yaml",
	Short:        "check a YAML fixture of type/value/want cases",
	RunE:         runCheck,
	Args:         cobra.ExactArgs(1),
	SilenceUsage: true,
}

var (
	envFlag  *string
	logLevel *int
)

func init() {
	envFlag = CheckCmd.Flags().String("env", "default", `environment to check against; only "default" is wired`)
	logLevel = CheckCmd.Flags().IntP("log-level", "l", int(slog.LevelWarn), "log level")
}

// fixtureCase is one row of the fixture file: a type expression
// (§4.2's constructor names, e.g. "Array(Number)"), a YAML-literal
// value, and the membership result it is expected to produce.
type fixtureCase struct {
	Name  string `yaml:"name"`
	Type  string `yaml:"type"`
	Value any    `yaml:"value"`
	Want  bool   `yaml:"want"`
}

type fixture struct {
	Checks []fixtureCase `yaml:"checks"`
}

func runCheck(cmd *cobra.Command, args []string) error {
	ilelog.SetLevel(slog.Level(*logLevel))

	if *envFlag != "default" {
		return fmt.Errorf("typedefcheck: unsupported --env %q, only \"default\" is wired", *envFlag)
	}

	raw, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("could not read fixture: %w", err)
	}

	var fx fixture
	if err := yaml.Unmarshal(raw, &fx); err != nil {
		return fmt.Errorf("could not parse fixture: %w", err)
	}

	cat := builtinCatalog()
	failures := 0
	for _, c := range fx.Checks {
		t, perr := parseType(c.Type, cat)
		if perr != nil {
			fmt.Fprintf(os.Stderr, "FAIL %s: %v\n", c.Name, perr)
			failures++
			continue
		}
		got := typedef.Test(typedef.Env, t, convertValue(c.Value))
		if got != c.Want {
			fmt.Fprintf(os.Stderr, "FAIL %s: %s recognized %v, want %v\n", c.Name, c.Type, got, c.Want)
			failures++
			continue
		}
		fmt.Printf("PASS %s\n", c.Name)
	}

	if failures > 0 {
		return fmt.Errorf("%d of %d checks failed", failures, len(fx.Checks))
	}
	return nil
}

func builtinCatalog() map[string]*types.Type {
	return map[string]*types.Type{
		"Any":            typedef.Any,
		"Boolean":        typedef.Boolean,
		"String":         typedef.String,
		"Number":         typedef.Number,
		"Integer":        typedef.Integer,
		"NonZeroInteger": typedef.NonZeroInteger,
		"FiniteNumber":   typedef.FiniteNumber,
		"ValidNumber":    typedef.ValidNumber,
		"Object":         typedef.Object,
		"FunctionType":   typedef.FunctionType,
		"Undefined":      typedef.Undefined,
		"Null":           typedef.Null,
	}
}

// parseType parses the minimal grammar a fixture needs: a bare
// catalog name, or a single-argument wrapper (Array/Nullable) around
// another type expression.
func parseType(s string, cat map[string]*types.Type) (*types.Type, error) {
	s = strings.TrimSpace(s)
	open := strings.IndexByte(s, '(')
	if open < 0 {
		t, ok := cat[s]
		if !ok {
			return nil, fmt.Errorf("unknown type %q", s)
		}
		return t, nil
	}
	if !strings.HasSuffix(s, ")") {
		return nil, fmt.Errorf("malformed type expression %q", s)
	}
	name := s[:open]
	inner, err := parseType(s[open+1:len(s)-1], cat)
	if err != nil {
		return nil, err
	}
	switch name {
	case "Array":
		return typedef.Array(inner), nil
	case "Nullable":
		return typedef.Nullable(inner), nil
	default:
		return nil, fmt.Errorf("unknown parameterised type %q", name)
	}
}

// convertValue normalises a YAML-decoded tree (which yields int for
// integral scalars) onto the engine's value representation, where a
// Number is always a float64.
func convertValue(v any) any {
	switch vv := v.(type) {
	case int:
		return float64(vv)
	case []any:
		out := make([]any, len(vv))
		for i, e := range vv {
			out[i] = convertValue(e)
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(vv))
		for k, e := range vv {
			out[k] = convertValue(e)
		}
		return out
	default:
		return vv
	}
}
