package cli

import (
	"strconv"
	"strings"
	"time"

	"github.com/treykane/hkctl/internal/model"
	"github.com/treykane/hkctl/internal/util"
)

// The types below implement pflag.Value so that malformed values are
// rejected while flags are parsed, before any connection is attempted.

type stringValue struct {
	dst *string
	typ string
}

func (v stringValue) String() string     { return *v.dst }
func (v stringValue) Set(s string) error { *v.dst = s; return nil }
func (v stringValue) Type() string       { return v.typ }

type stringsValue struct {
	dst *[]string
	typ string
}

func (v stringsValue) String() string     { return strings.Join(*v.dst, ",") }
func (v stringsValue) Set(s string) error { *v.dst = append(*v.dst, s); return nil }
func (v stringsValue) Type() string       { return v.typ }

type enabledValue struct {
	dst *model.Enabled
}

func (v enabledValue) String() string { return v.dst.String() }
func (v enabledValue) Type() string   { return "either|true|false" }

func (v enabledValue) Set(s string) error {
	e, err := model.ParseEnabled(s)
	if err != nil {
		return err
	}
	*v.dst = e
	return nil
}

type timeValue struct {
	dst **time.Time
}

func (v timeValue) Type() string { return "TIME" }

func (v timeValue) String() string {
	if *v.dst == nil {
		return ""
	}
	return (*v.dst).Format(time.RFC3339)
}

func (v timeValue) Set(s string) error {
	t, err := parseTime(s)
	if err != nil {
		return err
	}
	*v.dst = &t
	return nil
}

type portValue struct {
	dst **uint16
}

func (v portValue) Type() string { return "PORT" }

func (v portValue) String() string {
	if *v.dst == nil {
		return ""
	}
	return strconv.FormatUint(uint64(**v.dst), 10)
}

func (v portValue) Set(s string) error {
	p, err := util.ParsePort(s)
	if err != nil {
		return err
	}
	*v.dst = &p
	return nil
}
