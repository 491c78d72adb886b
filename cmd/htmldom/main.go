// Copyright (c) 2025 Michael D Henderson. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"log/slog"
	"os"

	"github.com/mdhender/htmldom"
	"github.com/mdhender/htmldom/model"
	"github.com/mdhender/htmldom/pipelines/stages"
	store "github.com/mdhender/htmldom/stores/sqlite"
	"github.com/spf13/cobra"
)

func main() {
	addFlags := func(cmd *cobra.Command) error {
		cmd.PersistentFlags().Bool("debug", false, "log debugging information")
		cmd.PersistentFlags().Bool("log-with-default-flags", false, "log with default flags")
		cmd.PersistentFlags().Bool("log-with-shortfile", true, "log with short file name")
		cmd.PersistentFlags().Bool("log-with-timestamp", false, "log with timestamp")
		cmd.PersistentFlags().Bool("quiet", false, "log less information")
		cmd.PersistentFlags().Bool("show-version", false, "show version")
		cmd.PersistentFlags().Bool("verbose", false, "log more information")
		return nil
	}
	var cmdRoot = &cobra.Command{
		Use:   "htmldom",
		Short: "HTML document tree utility",
		Long:  `Load, query, and render HTML documents as node trees`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logWithDefaultFlags, _ := cmd.Flags().GetBool("log-with-default-flags")
			logWithShortFileName, _ := cmd.Flags().GetBool("log-with-shortfile")
			logWithTimestamp, _ := cmd.Flags().GetBool("log-with-timestamp")
			logFlags := 0
			if logWithShortFileName {
				logFlags |= log.Lshortfile
			}
			if logWithTimestamp {
				logFlags |= log.Ltime
			}
			if logWithDefaultFlags || logFlags == 0 {
				logFlags = log.LstdFlags
			}
			log.SetFlags(logFlags)

			if showVersion, _ := cmd.Flags().GetBool("show-version"); showVersion {
				fmt.Printf("htmldom: version %q\n", htmldom.Version().Core())
			}

			return nil
		},
	}
	cmdRoot.AddCommand(cmdParse())
	cmdRoot.AddCommand(cmdQuery())
	cmdRoot.AddCommand(cmdRender())
	cmdRoot.AddCommand(cmdDB())
	cmdRoot.AddCommand(cmdBatch())
	cmdRoot.AddCommand(cmdVersion())
	if err := addFlags(cmdRoot); err != nil {
		log.Fatal(err)
	}

	if err := cmdRoot.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadSettings builds LoadSettings from the shared parsing flags.
func loadSettings(cmd *cobra.Command, coalesceText, noEntities bool) htmldom.LoadSettings {
	settings := htmldom.NewLoadSettings().
		AllTextSeparately(!coalesceText).
		DecodeEntities(!noEntities)
	if debug, _ := cmd.Flags().GetBool("debug"); debug {
		logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
		settings = settings.WithLogger(logger)
	}
	return settings
}

// loadFile parses a document file, reporting parse failures with a
// caret diagnostic on stderr.
func loadFile(ctx context.Context, cmd *cobra.Command, path string, coalesceText, noEntities bool) (*htmldom.Element, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	src := string(data)
	root, err := htmldom.FromHTML(ctx, src, loadSettings(cmd, coalesceText, noEntities))
	if err != nil {
		if diag, ok := htmldom.DiagnoseError(err); ok {
			htmldom.PrintDiagnostic(os.Stderr, diag, path, src)
		}
		return nil, err
	}
	return root, nil
}

func cmdParse() *cobra.Command {
	coalesceText := false
	noEntities := false
	var outputFile string
	addFlags := func(cmd *cobra.Command) error {
		cmd.Flags().BoolVar(&coalesceText, "coalesce-text", coalesceText, "merge adjacent text and drop whitespace-only runs")
		cmd.Flags().BoolVar(&noEntities, "no-entities", noEntities, "keep character entities encoded")
		cmd.Flags().StringVarP(&outputFile, "output", "o", outputFile, "save parse to file")
		return nil
	}
	var cmd = &cobra.Command{
		Use:          "parse <html-file>",
		Short:        "parse an HTML file and dump the node tree as JSON",
		SilenceUsage: true,
		Args:         cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root, err := loadFile(context.Background(), cmd, args[0], coalesceText, noEntities)
			if err != nil {
				return err
			}
			if root == nil {
				log.Printf("%s: empty document\n", args[0])
				return nil
			}
			if data, err := json.MarshalIndent(root, "", "  "); err != nil {
				log.Fatalf("json: %v\n", err)
			} else if outputFile == "" {
				fmt.Printf("%s\n", string(data))
			} else if err = os.WriteFile(outputFile, data, 0o644); err != nil {
				return err
			} else {
				log.Printf("%s: wrote %d bytes\n", outputFile, len(data))
			}

			return nil
		},
	}
	if err := addFlags(cmd); err != nil {
		log.Fatal(err)
	}
	return cmd
}

func cmdQuery() *cobra.Command {
	var tag, key, value, valuePart string
	firstOnly := false
	addFlags := func(cmd *cobra.Command) error {
		cmd.Flags().StringVarP(&tag, "tag", "t", tag, "match elements with this tag name")
		cmd.Flags().StringVarP(&key, "key", "k", key, "match elements carrying this attribute")
		cmd.Flags().StringVarP(&value, "value", "v", value, "require the attribute's full value to equal this")
		cmd.Flags().StringVarP(&valuePart, "value-part", "p", valuePart, "require one of the attribute's value tokens to equal this")
		cmd.Flags().BoolVar(&firstOnly, "first", firstOnly, "print only the first match")
		return nil
	}
	var cmd = &cobra.Command{
		Use:          "query <html-file>",
		Short:        "find elements by tag name or attribute criteria",
		SilenceUsage: true,
		Args:         cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if tag == "" && key == "" && value == "" && valuePart == "" {
				return fmt.Errorf("at least one of --tag, --key, --value, --value-part is required")
			}

			root, err := loadFile(context.Background(), cmd, args[0], true, false)
			if err != nil {
				return err
			}
			if root == nil {
				return fmt.Errorf("%s: empty document", args[0])
			}

			var matches []*htmldom.Element
			if key != "" || value != "" || valuePart != "" {
				fetch := root.ChildrenFetch()
				if key != "" {
					fetch = fetch.Key(key)
				}
				if value != "" {
					fetch = fetch.Value(value)
				}
				if valuePart != "" {
					fetch = fetch.ValuePart(valuePart)
				}
				matches = fetch.All()
				if tag != "" {
					var filtered []*htmldom.Element
					for _, e := range matches {
						if name, ok := e.TagName(); ok && name == tag {
							filtered = append(filtered, e)
						}
					}
					matches = filtered
				}
			} else {
				matches = root.FindAll(tag)
			}

			if len(matches) == 0 {
				return fmt.Errorf("no matches")
			}
			if firstOnly {
				matches = matches[:1]
			}
			for _, e := range matches {
				fmt.Println(e.HTML())
			}
			return nil
		},
	}
	if err := addFlags(cmd); err != nil {
		log.Fatal(err)
	}
	return cmd
}

func cmdRender() *cobra.Command {
	coalesceText := false
	noEntities := false
	var outputFile string
	addFlags := func(cmd *cobra.Command) error {
		cmd.Flags().BoolVar(&coalesceText, "coalesce-text", coalesceText, "merge adjacent text and drop whitespace-only runs")
		cmd.Flags().BoolVar(&noEntities, "no-entities", noEntities, "keep character entities encoded")
		cmd.Flags().StringVarP(&outputFile, "output", "o", outputFile, "save rendered markup to file")
		return nil
	}
	var cmd = &cobra.Command{
		Use:          "render <html-file>",
		Short:        "parse an HTML file and re-serialize it",
		SilenceUsage: true,
		Args:         cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root, err := loadFile(context.Background(), cmd, args[0], coalesceText, noEntities)
			if err != nil {
				return err
			}
			if root == nil {
				return nil
			}
			rendered := root.HTML()
			if outputFile == "" {
				fmt.Println(rendered)
				return nil
			}
			if err := os.WriteFile(outputFile, []byte(rendered), 0o644); err != nil {
				return err
			}
			log.Printf("%s: wrote %d bytes\n", outputFile, len(rendered))
			return nil
		},
	}
	if err := addFlags(cmd); err != nil {
		log.Fatal(err)
	}
	return cmd
}

func cmdDB() *cobra.Command {
	var cmd = &cobra.Command{
		Use:   "db",
		Short: "manage the document database",
	}
	cmd.AddCommand(cmdDBInit())
	cmd.AddCommand(cmdDBCompact())
	return cmd
}

func cmdDBInit() *cobra.Command {
	databaseFile := "htmldom.db"
	addFlags := func(cmd *cobra.Command) error {
		cmd.Flags().StringVar(&databaseFile, "database", databaseFile, "path to the database file")
		return nil
	}
	var cmd = &cobra.Command{
		Use:          "init-db",
		Short:        "create a new document database",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := store.InitDatabase(databaseFile); err != nil {
				return err
			}
			log.Printf("%s: created\n", databaseFile)
			return nil
		},
	}
	if err := addFlags(cmd); err != nil {
		log.Fatal(err)
	}
	return cmd
}

func cmdDBCompact() *cobra.Command {
	databaseFile := "htmldom.db"
	addFlags := func(cmd *cobra.Command) error {
		cmd.Flags().StringVar(&databaseFile, "database", databaseFile, "path to the database file")
		return nil
	}
	var cmd = &cobra.Command{
		Use:          "compact-db",
		Short:        "checkpoint and vacuum the document database",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := store.CompactDatabase(databaseFile); err != nil {
				return err
			}
			log.Printf("%s: compacted\n", databaseFile)
			return nil
		},
	}
	if err := addFlags(cmd); err != nil {
		log.Fatal(err)
	}
	return cmd
}

func cmdBatch() *cobra.Command {
	var cmd = &cobra.Command{
		Use:   "batch",
		Short: "run the document pipeline",
	}
	cmd.AddCommand(cmdBatchIngest())
	cmd.AddCommand(cmdBatchWork())
	return cmd
}

func cmdBatchIngest() *cobra.Command {
	databaseFile := "htmldom.db"
	dataDir := "data"
	addFlags := func(cmd *cobra.Command) error {
		cmd.Flags().StringVar(&databaseFile, "database", databaseFile, "path to the database file")
		cmd.Flags().StringVar(&dataDir, "data", dataDir, "directory for ingested documents")
		return nil
	}
	var cmd = &cobra.Command{
		Use:          "ingest <html-file> [<html-file>...]",
		Short:        "ingest documents and queue them for parsing",
		SilenceUsage: true,
		Args:         cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			sqlStore, err := store.NewSQLiteStoreWithConfig(store.StoreConfig{Path: databaseFile})
			if err != nil {
				return err
			}
			defer sqlStore.Close()

			svc := stages.NewIngestService(sqlStore, dataDir)
			for _, input := range args {
				result, err := svc.IngestPath(ctx, input)
				if err != nil {
					return err
				}
				if result.Duplicate {
					log.Printf("%s: duplicate of document %d\n", input, result.DocumentID)
					continue
				}
				log.Printf("%s: ingested as document %d, work %d\n", input, result.DocumentID, result.WorkID)
			}
			return nil
		},
	}
	if err := addFlags(cmd); err != nil {
		log.Fatal(err)
	}
	return cmd
}

func cmdBatchWork() *cobra.Command {
	databaseFile := "htmldom.db"
	dataDir := "data"
	var workerID string
	maxJobs := 0
	addFlags := func(cmd *cobra.Command) error {
		cmd.Flags().StringVar(&databaseFile, "database", databaseFile, "path to the database file")
		cmd.Flags().StringVar(&dataDir, "data", dataDir, "directory for ingested documents")
		cmd.Flags().StringVar(&workerID, "worker-id", workerID, "worker identifier (defaults to host:pid)")
		cmd.Flags().IntVar(&maxJobs, "max-jobs", maxJobs, "stop after this many jobs (0 means drain the queue)")
		return nil
	}
	var cmd = &cobra.Command{
		Use:          "work",
		Short:        "claim and execute queued parse jobs",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			sqlStore, err := store.NewSQLiteStoreWithConfig(store.StoreConfig{Path: databaseFile})
			if err != nil {
				return err
			}
			defer sqlStore.Close()

			svc := stages.NewWorkerService(sqlStore, dataDir, workerID)
			processed, failed := 0, 0
			for maxJobs == 0 || processed < maxJobs {
				claimed, err := svc.ProcessJob(ctx, model.WorkStageParse)
				if !claimed {
					break
				}
				processed++
				if err != nil {
					failed++
					log.Printf("job failed: %v\n", err)
				}
			}
			log.Printf("processed %d jobs, %d failed\n", processed, failed)
			return nil
		},
	}
	if err := addFlags(cmd); err != nil {
		log.Fatal(err)
	}
	return cmd
}

func cmdVersion() *cobra.Command {
	showBuildInfo := false
	addFlags := func(cmd *cobra.Command) error {
		cmd.Flags().BoolVar(&showBuildInfo, "build-info", showBuildInfo, "show build information")
		return nil
	}
	var cmd = &cobra.Command{
		Use:   "version",
		Short: "display the application's version number",
		RunE: func(cmd *cobra.Command, args []string) error {
			if showBuildInfo {
				fmt.Println(htmldom.Version().String())
				return nil
			}
			fmt.Println(htmldom.Version().Core())
			return nil
		},
	}
	if err := addFlags(cmd); err != nil {
		log.Fatal(err)
	}
	return cmd
}
