// Command weftgraph serves and inspects a causal-reasoning graph: an
// in-memory merge engine with per-incident tombstone views.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/weftdb/weftgraph/pkg/api"
	"github.com/weftdb/weftgraph/pkg/config"
	"github.com/weftdb/weftgraph/pkg/graphstore"
)

var (
	version = "0.1.0"
	commit  = "dev"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "weftgraph",
		Short: "weftgraph - a causal-reasoning graph merge engine",
		Long: `weftgraph holds an in-memory causal graph of nodes and edges merged
from concurrent hypothesis deltas under lattice/CRDT semantics, with
per-incident tombstone views layered on top without mutating the
underlying graph.`,
	}

	rootCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("weftgraph v%s (%s)\n", version, commit)
		},
	})

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the weftgraph HTTP server",
		RunE:  runServe,
	}
	serveCmd.Flags().String("address", "", "Bind address (overrides WEFTGRAPH_HTTP_ADDRESS)")
	serveCmd.Flags().Int("port", 0, "Bind port (overrides WEFTGRAPH_HTTP_PORT)")
	rootCmd.AddCommand(serveCmd)

	exportCmd := &cobra.Command{
		Use:   "export <incident-id> <output-file>",
		Short: "Snapshot an incident's live view to a JSON bundle",
		Args:  cobra.ExactArgs(2),
		RunE:  runExport,
	}
	exportCmd.Flags().String("server", "http://127.0.0.1:8080", "Running weftgraph server to read from")
	rootCmd.AddCommand(exportCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg := config.LoadFromEnv()

	if address, _ := cmd.Flags().GetString("address"); address != "" {
		cfg.Server.Address = address
	}
	if port, _ := cmd.Flags().GetInt("port"); port != 0 {
		cfg.Server.Port = port
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	log.Printf("starting weftgraph v%s", version)
	log.Printf("config: %s", cfg.String())

	store := graphstore.New()
	apiConfig := &api.Config{
		Address:         cfg.Server.Address,
		Port:            cfg.Server.Port,
		ReadTimeout:     30 * time.Second,
		WriteTimeout:    30 * time.Second,
		IdleTimeout:     120 * time.Second,
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
	}

	srv, err := api.New(store, apiConfig)
	if err != nil {
		return fmt.Errorf("creating server: %w", err)
	}
	if err := srv.Start(); err != nil {
		return fmt.Errorf("starting server: %w", err)
	}

	log.Printf("listening on %s", srv.Addr())

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Println("shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Stop(ctx); err != nil {
		return fmt.Errorf("stopping server: %w", err)
	}
	log.Println("stopped gracefully")
	return nil
}

// exportBundle is the JSON form written by the export command: a live
// view plus enough metadata to tell repeated exports of the same
// incident apart when archived.
type exportBundle struct {
	ExportID   string              `json:"export_id"`
	IncidentID string              `json:"incident_id"`
	ExportedAt time.Time           `json:"exported_at"`
	Graph      api.CausalGraphJSON `json:"graph"`
}

func runExport(cmd *cobra.Command, args []string) error {
	incidentID := args[0]
	outputPath := args[1]
	server, _ := cmd.Flags().GetString("server")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, server+"/v1/incidents/"+incidentID+"/view", nil)
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return fmt.Errorf("reading live view for %s from %s: %w", incidentID, server, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var errBody struct {
			Error string `json:"error"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&errBody)
		return fmt.Errorf("server returned %d for incident %s: %s", resp.StatusCode, incidentID, errBody.Error)
	}

	var graph api.CausalGraphJSON
	if err := json.NewDecoder(resp.Body).Decode(&graph); err != nil {
		return fmt.Errorf("decoding live view: %w", err)
	}

	bundle := exportBundle{
		ExportID:   uuid.NewString(),
		IncidentID: incidentID,
		ExportedAt: time.Now().UTC(),
		Graph:      graph,
	}

	f, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("creating %s: %w", outputPath, err)
	}
	defer f.Close()

	encoder := json.NewEncoder(f)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(bundle); err != nil {
		return fmt.Errorf("writing bundle: %w", err)
	}

	fmt.Printf("exported incident %s to %s (export id %s)\n", incidentID, outputPath, bundle.ExportID)
	return nil
}
