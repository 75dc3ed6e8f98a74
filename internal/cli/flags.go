package cli

import (
	"github.com/alexanderramin/stickies/internal/store"
	"github.com/spf13/pflag"
)

// formatFlag is a --format flag that rejects unknown formats at parse time.
type formatFlag struct {
	format *store.Format
}

var _ pflag.Value = formatFlag{}

func newFormatFlag(p *store.Format, def store.Format) formatFlag {
	*p = def
	return formatFlag{format: p}
}

func (f formatFlag) String() string {
	if f.format == nil {
		return ""
	}
	return string(*f.format)
}

func (f formatFlag) Set(s string) error {
	format, err := store.ParseFormat(s)
	if err != nil {
		return err
	}
	*f.format = format
	return nil
}

func (f formatFlag) Type() string { return "format" }
