package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"licensetools/cargo"
	"licensetools/config"
	"licensetools/logger"
	"licensetools/output"
	"licensetools/retrieval"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		os.Exit(1)
	}
	if cfg.ShowVersion {
		fmt.Println(cfg.VersionString())
		return
	}

	logger.Init(cfg.LogLevel)

	// Handle graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go handleSignals(cancel)

	if cfg.CargoLockDownload {
		if err := cargo.DownloadFromLockFile(ctx, cfg.CargoLock, cfg.TargetDirectory); err != nil {
			logger.Fatalf("Crate download failed: %v", err)
		}
		logger.Info("Crate download completed successfully.")
		return
	}

	opts := retrieval.Options{
		Flags: retrieval.EncodeFlags(retrieval.Toggles{
			Copyrights:     cfg.RetrieveCopyrights,
			Emails:         cfg.RetrieveEmails,
			FileInfo:       cfg.RetrieveFileInfo,
			URLs:           cfg.RetrieveURLs,
			LDDData:        cfg.RetrieveLDDData,
			FontData:       cfg.RetrieveFontData,
			PythonMetadata: cfg.RetrievePythonMetadata,
			CargoMetadata:  cfg.RetrieveCargoMetadata,
			ImageMetadata:  cfg.RetrieveImageMetadata,
		}),
		JobCount:               cfg.Jobs,
		AllowRandomDirFallback: cfg.AllowRandomDirFallback,
		DeleteUnpackedDirs:     cfg.DeleteUnpackedDirs,
		MaxArchiveDepth:        cfg.MaxArchiveDepth,
		IndexURL:               cfg.IndexURL,
		PreferSdist:            cfg.PreferSdist,
	}
	source := retrieval.Source{
		Directory: cfg.Directory,
		File:      cfg.File,
		Archive:   cfg.Archive,
		URL:       cfg.URL,
		Package:   cfg.Package,
	}

	results, err := retrieval.Run(ctx, source, opts)
	if err != nil {
		logger.Fatalf("Analysis failed: %v", err)
	}

	if cfg.JSONOutput != "" {
		if err := writeJSON(cfg.JSONOutput, results); err != nil {
			logger.Fatalf("Failed to write JSON output: %v", err)
		}
	}
	logger.Info("Analysis completed successfully.")
}

func writeJSON(path string, results []*retrieval.FileResult) error {
	writer, err := output.New(path)
	if err != nil {
		return err
	}
	for _, result := range results {
		if err := writer.Write(result); err != nil {
			writer.Close()
			return err
		}
	}
	return writer.Close()
}

func handleSignals(cancel context.CancelFunc) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan
	logger.Info("Interrupt signal received. Shutting down...")
	cancel()
}
