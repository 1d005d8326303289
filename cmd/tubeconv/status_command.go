package main

import (
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/spf13/cobra"
)

type statsPayload struct {
	Conversions *struct {
		TotalConversions int64            `json:"totalConversions"`
		TotalBytes       int64            `json:"totalBytes"`
		ByFormat         map[string]int64 `json:"byFormat"`
	} `json:"conversions"`
	Sweeper *struct {
		Sweeps  int64 `json:"sweeps"`
		Deleted int64 `json:"deleted"`
	} `json:"sweeper"`
}

func newStatusCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the state of a running service",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			base := "http://" + dialAddress(cfg.Server.Bind)
			client := &http.Client{Timeout: 5 * time.Second}

			resp, err := client.Get(base + "/health")
			if err != nil {
				return fmt.Errorf("service not reachable at %s; start it with `tubeconv serve`", base)
			}
			resp.Body.Close()

			rows := [][]string{
				{"Service", "running"},
				{"Address", base},
				{"Working directory", cfg.Paths.DownloadDir},
			}

			statsResp, err := client.Get(base + "/api/stats")
			if err == nil {
				defer statsResp.Body.Close()
				var stats statsPayload
				if decodeErr := json.NewDecoder(statsResp.Body).Decode(&stats); decodeErr == nil {
					if stats.Conversions != nil {
						rows = append(rows,
							[]string{"Conversions", fmt.Sprintf("%d", stats.Conversions.TotalConversions)},
							[]string{"Bytes produced", fmt.Sprintf("%d", stats.Conversions.TotalBytes)},
						)
					}
					if stats.Sweeper != nil {
						rows = append(rows,
							[]string{"Sweeps", fmt.Sprintf("%d", stats.Sweeper.Sweeps)},
							[]string{"Files reclaimed", fmt.Sprintf("%d", stats.Sweeper.Deleted)},
						)
					}
				}
			}

			fmt.Fprintln(cmd.OutOrStdout(), renderTable(
				[]string{"Field", "Value"},
				rows,
				[]columnAlignment{alignLeft, alignLeft},
			))
			return nil
		},
	}
}

// dialAddress turns a listen address like ":3000" into one a client can dial.
func dialAddress(bind string) string {
	host, port, err := net.SplitHostPort(strings.TrimSpace(bind))
	if err != nil {
		return bind
	}
	if host == "" || host == "0.0.0.0" || host == "::" {
		host = "127.0.0.1"
	}
	return net.JoinHostPort(host, port)
}
