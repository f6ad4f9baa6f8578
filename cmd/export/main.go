package main

import (
	"context"
	"flag"
	"log"
	"strconv"
	"strings"

	app2 "github.com/IT-Nick/careerpath/internal/app"
	"github.com/IT-Nick/careerpath/internal/infra/config"
)

func main() {
	var (
		ids      = flag.String("ids", "", "comma separated recommendation IDs")
		callerID = flag.Int64("caller", 0, "ID of the administrator running the export")
		out      = flag.String("out", "reports", "output directory")
	)
	flag.Parse()

	recIDs, err := parseIDs(*ids)
	if err != nil {
		log.Fatalf("invalid -ids: %v", err)
	}
	if len(recIDs) == 0 || *callerID <= 0 {
		flag.Usage()
		log.Fatal("-ids and -caller are required")
	}

	ctx := context.Background()
	app, err := app2.NewApp(ctx, config.Path())
	if err != nil {
		log.Fatalf("Ошибка инициализации приложения: %v", err)
	}
	defer app.Shutdown(ctx)

	caller, err := app.ResolveCaller(ctx, *callerID)
	if err != nil {
		log.Fatalf("caller %d: %v", *callerID, err)
	}

	paths, err := app.ExportReports(ctx, caller, recIDs, *out)
	if err != nil {
		log.Fatalf("export failed: %v", err)
	}
	for _, p := range paths {
		log.Println(p)
	}
}

func parseIDs(raw string) ([]int64, error) {
	var ids []int64
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.ParseInt(part, 10, 64)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}
