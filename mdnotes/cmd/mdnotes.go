// Command-line entrypoint for maintenance tasks on the notes database
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"text/tabwriter"
	"time"

	"mdnotes/mdnotes/config"
	"mdnotes/mdnotes/controllers"
	"mdnotes/mdnotes/services/markdown"
	"mdnotes/mdnotes/sources/db"
	"mdnotes/mdnotes/sources/db/dao"
	"mdnotes/mdnotes/sources/storage"
	"mdnotes/mdnotes/utils/logging"

	"go.uber.org/zap"
)

func usage() {
	fmt.Println("mdnotes CLI usage:")
	fmt.Println("  mdnotes init          # create the notes table if missing")
	fmt.Println("  mdnotes list          # print every note, most recent first")
	fmt.Println("  mdnotes export [dir]  # write notes as markdown (default ./export), and to MinIO when configured")
	fmt.Println("  mdnotes show <id> [dir] # print an archived export, from MinIO when configured, else from dir")
}

func main() {
	cfg := config.LoadConfig()
	logging.InitLogger(cfg.LogDir)
	defer logging.Sync()

	args := os.Args[1:]
	if len(args) == 0 {
		usage()
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	// NewDatabase runs the schema bootstrap, which is all init needs
	database, err := db.NewDatabase(ctx, cfg)
	if err != nil {
		logging.ErrorLogger.Error("database connection error", zap.Error(err))
		fmt.Fprintln(os.Stderr, "database:", err)
		os.Exit(1)
	}
	defer database.Close()
	ctrl := controllers.NewNotesController(dao.NewNoteDAO(database.DB, cfg.DBTimeout), markdown.NewRenderer())

	switch args[0] {
	case "init":
		fmt.Println("schema ready")
	case "list":
		err = list(ctx, ctrl, os.Stdout)
	case "export":
		dir := "./export"
		if len(args) > 1 {
			dir = args[1]
		}
		err = export(ctx, cfg, ctrl, dir)
	case "show":
		if len(args) < 2 {
			usage()
			os.Exit(1)
		}
		dir := "./export"
		if len(args) > 2 {
			dir = args[2]
		}
		var src archive
		src, err = openArchive(ctx, cfg, dir)
		if err == nil {
			err = show(ctx, src, args[1], os.Stdout)
		}
	default:
		usage()
		os.Exit(1)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, args[0]+":", err)
		os.Exit(1)
	}
}

func list(ctx context.Context, ctrl *controllers.NotesController, out io.Writer) error {
	notes, err := ctrl.List(ctx)
	if err != nil {
		return err
	}
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tUPDATED\tTITLE")
	for i := range notes {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", notes[i].ID, notes[i].Updated.Local().Format("2006-01-02 15:04:05"), notes[i].TitleText())
	}
	return tw.Flush()
}

func export(ctx context.Context, cfg config.Config, ctrl *controllers.NotesController, dir string) error {
	dirSink, err := storage.NewDirSink(dir)
	if err != nil {
		return err
	}
	sinks := []controllers.ExportSink{dirSink}
	if cfg.MinIOEndpoint != "" {
		minioClient, err := storage.NewMinIOClient(ctx, cfg)
		if err != nil {
			logging.ErrorLogger.Error("minio connection error", zap.Error(err))
			return err
		}
		sinks = append(sinks, minioClient)
	}
	count, err := ctrl.ExportAll(ctx, sinks...)
	if err != nil {
		return err
	}
	fmt.Printf("exported %d notes to %s\n", count, dir)
	return nil
}

// archive is where show reads exported notes back from.
type archive interface {
	Get(ctx context.Context, name string) ([]byte, error)
}

func openArchive(ctx context.Context, cfg config.Config, dir string) (archive, error) {
	if cfg.MinIOEndpoint != "" {
		return storage.NewMinIOClient(ctx, cfg)
	}
	return &storage.DirSink{Root: dir}, nil
}

func show(ctx context.Context, src archive, id string, out io.Writer) error {
	data, err := src.Get(ctx, markdown.ExportFileName(id))
	if err != nil {
		return fmt.Errorf("archived note %s: %w", id, err)
	}
	_, err = out.Write(data)
	return err
}
