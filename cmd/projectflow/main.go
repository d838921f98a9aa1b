package main

import (
	"log/slog"
	"os"

	"github.com/arkamaya/projectflow/pkg/projectflow"
)

func main() {

	//you may do your own logger setup here or use this default one with slog
	projectflow.SetupLogger()

	eng, err := projectflow.Open()
	if err != nil {
		slog.Error("Engine failed to start", "error", err)
		os.Exit(1)
	}
	defer eng.Close()

	workflows, err := eng.Store.GetAll()
	if err != nil {
		slog.Error("Failed to list workflows", "error", err)
		os.Exit(1)
	}
	for _, wf := range workflows {
		slog.Info("Workflow available", "id", wf.ID, "name", wf.Name, "steps", len(wf.Steps))
	}

	statuses, err := eng.Store.AllUniqueStatuses()
	if err != nil {
		slog.Error("Failed to collect statuses", "error", err)
		os.Exit(1)
	}
	slog.Info("Project status vocabulary", "statuses", statuses)
}
