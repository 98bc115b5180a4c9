package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/fivetwenty-io/gmaps/internal/constants"
)

// outputResult writes a response in the selected format. Table output renders the
// given header and rows.
func outputResult(result interface{}, header []string, rows [][]string) error {
	switch viper.GetString(keyOutput) {
	case constants.FormatJSON:
		encoder := newJSONEncoder(os.Stdout)

		return encoder.Encode(result)
	case constants.FormatYAML:
		encoder := yaml.NewEncoder(os.Stdout)

		return encoder.Encode(result)
	default:
		if len(rows) == 0 {
			_, _ = fmt.Fprintln(os.Stdout, "No results found")

			return nil
		}

		cells := make([]any, len(header))
		for i, name := range header {
			cells[i] = name
		}

		table := tablewriter.NewWriter(os.Stdout)
		table.Header(cells...)

		for _, row := range rows {
			_ = table.Append(row)
		}

		err := table.Render()
		if err != nil {
			return fmt.Errorf("failed to render table: %w", err)
		}

		return nil
	}
}

// newJSONEncoder returns an encoder that indents with JSONIndentSize spaces.
func newJSONEncoder(w io.Writer) *json.Encoder {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", strings.Repeat(" ", constants.JSONIndentSize))

	return encoder
}

func formatFloat(value float64) string {
	return strconv.FormatFloat(value, 'f', -1, 64)
}
