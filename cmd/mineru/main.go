package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"

	"github.com/adrianliechti/mineru/config"
	"github.com/adrianliechti/mineru/pkg/mineru"
	"github.com/adrianliechti/mineru/pkg/otel"
)

func main() {
	configFlag := flag.String("config", "", "config file")
	urlFlag := flag.String("url", "", "service url")
	langFlag := flag.String("lang", "", "comma separated document languages")
	backendFlag := flag.String("backend", "", "parsing backend")
	startFlag := flag.Int("start", -1, "first page")
	endFlag := flag.Int("end", -1, "last page")
	zipFlag := flag.Bool("zip", false, "request a zip archive")
	outputFlag := flag.String("o", "", "output file")

	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	shutdown, err := otel.Setup(ctx, "mineru")

	if err != nil {
		fail(err)
	}

	defer shutdown(context.Background())

	cfg := config.Default()

	if *configFlag != "" {
		if cfg, err = config.Parse(*configFlag); err != nil {
			fail(err)
		}
	}

	if *urlFlag != "" {
		cfg.URL = *urlFlag
	}

	if flag.NArg() == 0 {
		fail(errors.New("no input files"))
	}

	var files []io.Reader

	for _, path := range flag.Args() {
		f, err := os.Open(path)

		if err != nil {
			fail(err)
		}

		defer f.Close()

		files = append(files, f)
	}

	req, err := cfg.Request(files...)

	if err != nil {
		fail(err)
	}

	if *langFlag != "" {
		req.Languages = strings.Split(*langFlag, ",")
	}

	if *backendFlag != "" {
		req.Backend = *backendFlag
	}

	if *startFlag >= 0 {
		req.StartPage = *startFlag
	}

	if *endFlag >= 0 {
		req.EndPage = *endFlag
	}

	if *zipFlag {
		req.ResponseFormatZip = true
	}

	client, err := cfg.Client()

	if err != nil {
		fail(err)
	}

	defer client.Close()

	resp, err := client.Parse(ctx, req)

	if err != nil {
		fail(err)
	}

	defer resp.Close()

	if *outputFlag != "" {
		if err := resp.SaveToFile(*outputFlag); err != nil {
			fail(err)
		}

		slog.Info("result saved", "path", *outputFlag, "content_type", resp.ContentType())
		return
	}

	if resp.IsZip() {
		fail(errors.New("archive responses need an output file (-o)"))
	}

	markdown, err := resp.Markdown()

	if err != nil {
		fail(err)
	}

	fmt.Println(markdown)
}

func fail(err error) {
	var serviceErr *mineru.Error

	if errors.As(err, &serviceErr) {
		for _, v := range serviceErr.ValidationErrors {
			fmt.Fprintln(os.Stderr, v.String())
		}
	}

	fmt.Fprintln(os.Stderr, err)
	os.Exit(1)
}
