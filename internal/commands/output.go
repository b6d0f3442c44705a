package commands

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/moasq/tuimenu/internal/config"
	"github.com/moasq/tuimenu/internal/markup"
	"github.com/moasq/tuimenu/internal/session"
)

type resultJSON struct {
	Tag      string `json:"tag"`
	Label    string `json:"label"`
	Text     string `json:"text"`
	Outcome  string `json:"outcome"`
	TimedOut bool   `json:"timed_out"`
}

// writeResult prints the chosen item in the requested format. Labels and
// texts are printed without markup; tags are printed as given.
func writeResult(w io.Writer, format string, r session.Result) error {
	if r.Item == nil {
		return ErrCancelled
	}
	var err error
	switch format {
	case config.OutputLabel:
		_, err = fmt.Fprintln(w, markup.Strip(r.Item.Label()))
	case config.OutputText:
		_, err = fmt.Fprintln(w, markup.Strip(r.Item.Text()))
	case config.OutputJSON:
		err = json.NewEncoder(w).Encode(resultJSON{
			Tag:      r.Item.Tag(),
			Label:    markup.Strip(r.Item.Label()),
			Text:     markup.Strip(r.Item.Text()),
			Outcome:  r.Outcome.String(),
			TimedOut: r.TimedOut,
		})
	default:
		_, err = fmt.Fprintln(w, r.Item.Tag())
	}
	if err != nil {
		return fmt.Errorf("write result: %w", err)
	}
	return nil
}
