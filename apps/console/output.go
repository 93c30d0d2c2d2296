package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/labstack/gommon/color"

	"github.com/trezcool/schooladmin/core/session"
)

// printer writes tables and toasts, coloured after the operator's theme.
type printer struct {
	out   io.Writer
	color *color.Color
	theme string
}

func newPrinter(out io.Writer, theme string) *printer {
	c := color.New()
	c.SetOutput(out) // colours are disabled unless out is a terminal
	if theme == session.ThemePlain {
		c.Disable()
	}
	return &printer{out: out, color: c, theme: theme}
}

func (cli *commandLine) printer() *printer {
	return newPrinter(cli.out, cli.sess.Theme())
}

func (p *printer) success(format string, a ...interface{}) {
	msg := fmt.Sprintf(format, a...)
	if p.theme == session.ThemeLight {
		fmt.Fprintln(p.out, p.color.Blue("✔ "+msg, color.B))
		return
	}
	fmt.Fprintln(p.out, p.color.Green("✔ "+msg, color.B))
}

func (p *printer) failure(msg string) {
	if p.theme == session.ThemeLight {
		fmt.Fprintln(p.out, p.color.Magenta("✘ "+msg, color.B))
		return
	}
	fmt.Fprintln(p.out, p.color.Red("✘ "+msg, color.B))
}

func (p *printer) warn(format string, a ...interface{}) {
	fmt.Fprintln(p.out, p.color.Yellow("! "+fmt.Sprintf(format, a...)))
}

func (p *printer) title(s string) {
	if p.theme == session.ThemeLight {
		fmt.Fprintln(p.out, p.color.Black(s, color.U))
		return
	}
	fmt.Fprintln(p.out, p.color.Cyan(s, color.U))
}

func (p *printer) line(format string, a ...interface{}) {
	fmt.Fprintf(p.out, format+"\n", a...)
}

// table prints rows aligned under headers.
func (p *printer) table(headers []string, rows [][]string) {
	if len(rows) == 0 {
		fmt.Fprintln(p.out, p.color.Grey("(none)"))
		return
	}
	w := tabwriter.NewWriter(p.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, strings.Join(headers, "\t"))
	for _, row := range rows {
		fmt.Fprintln(w, strings.Join(row, "\t"))
	}
	_ = w.Flush()
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

func activeLabel(isActive bool) string {
	if isActive {
		return "active"
	}
	return "inactive"
}
