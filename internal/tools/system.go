// file: internal/tools/system.go
package tools

import (
	"context"
	"fmt"
	"time"

	"github.com/dkoosis/sonarr-mcp/internal/format"
	"github.com/dkoosis/sonarr-mcp/internal/mcp"
	"github.com/dkoosis/sonarr-mcp/internal/sonarr"
	sdk "github.com/modelcontextprotocol/go-sdk/mcp"
)

type systemReport struct {
	AppName   string            `json:"appName"`
	Version   string            `json:"version"`
	OsName    string            `json:"osName"`
	OsVersion string            `json:"osVersion"`
	Branch    string            `json:"branch"`
	IsDocker  bool              `json:"isDocker"`
	StartTime time.Time         `json:"startTime"`
	Disks     []format.DiskView `json:"disks"`
}

func (r *Registry) systemStatus(ctx context.Context) (*sdk.CallToolResult, error) {
	status, disks, err := sonarr.FetchStatusAndDisks(ctx, r.api)
	if err != nil {
		return nil, err
	}
	summary := fmt.Sprintf("Sonarr %s on %s %s", status.Version, status.OsName, status.OsVersion)
	if status.IsDocker {
		summary += " (docker)"
	}
	summary += fmt.Sprintf("\n%d disks reported", len(disks))
	return mcp.TextResult(summary, systemReport{
		AppName:   status.AppName,
		Version:   status.Version,
		OsName:    status.OsName,
		OsVersion: status.OsVersion,
		Branch:    status.Branch,
		IsDocker:  status.IsDocker,
		StartTime: status.StartTime,
		Disks:     format.Disks(disks),
	})
}
