package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/goccy/go-yaml"

	"github.com/tokmz/fdbook/pkg/fdapi"
)

// printer 按 --output 输出结果
type printer struct {
	format string
	writer io.Writer
}

func newPrinter(w io.Writer) *printer {
	format := outputFmt
	if format == "" {
		format = "table"
	}
	return &printer{format: format, writer: w}
}

// PrintDeposits 打印存款列表
func (p *printer) PrintDeposits(list []fdapi.FixedDeposit) error {
	switch p.format {
	case "json", "yaml":
		if list == nil {
			list = []fdapi.FixedDeposit{}
		}
		return p.encode(list)
	}

	if len(list) == 0 {
		_, err := fmt.Fprintln(p.writer, "No fixed deposits found.")
		return err
	}

	w := tabwriter.NewWriter(p.writer, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tAMOUNT\tSCHEME\tRATE\tTENURE\tMATURITY\tSTATUS")
	for _, fd := range list {
		fmt.Fprintf(w, "%s\t%.2f\t%s\t%.1f%%\t%dm\t%s\t%s\n",
			fd.ID, fd.Amount, fd.Scheme, fd.InterestRate, fd.TenureMonths, fd.MaturityDate, fd.Status)
	}
	return w.Flush()
}

// PrintPayload 打印接口原始响应；table 格式下为单条存款摘要
func (p *printer) PrintPayload(payload fdapi.Payload) error {
	if p.format == "table" {
		if fd, err := payload.Deposit(); err == nil && fd.ID != "" {
			return p.PrintDeposits([]fdapi.FixedDeposit{*fd})
		}
	}
	var v any
	if err := json.Unmarshal(payload, &v); err != nil {
		_, err = fmt.Fprintln(p.writer, string(payload))
		return err
	}
	return p.encode(v)
}

func (p *printer) encode(v any) error {
	if p.format == "yaml" {
		data, err := yaml.Marshal(v)
		if err != nil {
			return err
		}
		_, err = p.writer.Write(data)
		return err
	}
	enc := json.NewEncoder(p.writer)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
