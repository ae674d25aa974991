package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/ItsNotGoodName/waterline/internal/core"
	"github.com/ItsNotGoodName/waterline/internal/taskbar"
	"github.com/danielgtaylor/huma/v2/humacli"
	"github.com/k0kubun/pp"
	"github.com/spf13/cobra"
)

func snapshotCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "snapshot",
		Short: "Print the taskbars of a running panel",
		Run: humacli.WithOptions(func(cmd *cobra.Command, args []string, options *Options) {
			snapshots, err := fetchSnapshots(options.Host, options.Port)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(1)
			}
			pp.Println(snapshots)
		}),
	}
}

func fetchSnapshots(host string, port int) ([]taskbar.Snapshot, error) {
	if host == "" {
		host = "localhost"
	}
	url := "http://" + core.Address(host, port) + "/api/taskbars"

	client := http.Client{Timeout: 5 * time.Second}
	resp, err := client.Get(url)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("GET %s: %s", url, resp.Status)
	}

	var snapshots []taskbar.Snapshot
	if err := json.NewDecoder(resp.Body).Decode(&snapshots); err != nil {
		return nil, fmt.Errorf("decode snapshots: %w", err)
	}
	return snapshots, nil
}
