package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"reflect"
	"strings"
	"syscall"
	"time"

	"github.com/Drolfothesgnir/markplus/api"
	"github.com/Drolfothesgnir/markplus/highlight"
	"github.com/Drolfothesgnir/markplus/pipeline"
	"github.com/Drolfothesgnir/markplus/tmpstore"
	"github.com/Drolfothesgnir/markplus/util"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

var interruptSignals = []os.Signal{
	os.Interrupt,
	syscall.SIGTERM,
	syscall.SIGINT,
}

const usage = `usage: markplus [flags] [file ...]
       markplus serve

Reads markdown from the files, or from stdin when none is given, and writes
the normalized documents to stdout.

flags:
`

func main() {
	// reading .env config file
	config, err := util.LoadConfig(".")
	if err != nil {
		log.Fatal().Err(err).Msg("cannot read config file")
	}

	setupLogger(config)

	flags := flag.NewFlagSet("markplus", flag.ExitOnError)
	flags.Usage = func() {
		fmt.Fprint(flags.Output(), usage)
		flags.PrintDefaults()
	}

	flags.StringVar(&config.OutputFormat, "format", config.OutputFormat, "output format: "+strings.Join(util.Formats, ", "))
	flags.IntVar(&config.Workers, "workers", config.Workers, "number of documents processed at once")
	noHighlight := flags.Bool("no-highlight", !config.Highlight, "disable the ==highlight== extension")

	// ExitOnError handles the errors
	_ = flags.Parse(os.Args[1:])
	config.Highlight = !*noHighlight

	if err := config.Validate(); err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}

	processor, err := newProcessor(config)
	if err != nil {
		log.Fatal().Err(err).Msg("cannot create the processor")
	}

	// catching interrupt signals for graceful shutdown
	// stop() or a signal catch makes context Done
	ctx, stop := signal.NotifyContext(context.Background(), interruptSignals...)
	defer stop()

	if flags.Arg(0) == "serve" {
		serve(ctx, config, processor)
		return
	}

	docs, err := readDocuments(flags.Args(), os.Stdin)
	if err != nil {
		log.Fatal().Err(err).Msg("cannot read the documents")
	}

	results, err := processDocuments(ctx, processor, docs, config.Workers)
	if err != nil {
		log.Fatal().Err(err).Msg("cannot process the documents")
	}

	if err := writeResults(os.Stdout, config.OutputFormat, results); err != nil {
		log.Fatal().Err(err).Msg("cannot write the documents")
	}
}

func setupLogger(config util.Config) {
	level, err := zerolog.ParseLevel(config.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	if config.IsDevelopment() {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	} else {
		log.Logger = log.Output(os.Stderr)
	}
}

// newProcessor creates the pipeline with the extensions enabled by config.
func newProcessor(config util.Config) (*pipeline.Processor, error) {
	var exts []pipeline.Extension
	if config.Highlight {
		exts = append(exts, highlight.Extension())
	}

	return pipeline.New(pipeline.Config{
		Extensions: exts,
		Logger:     &log.Logger,
	})
}

func serve(ctx context.Context, config util.Config, processor *pipeline.Processor) {
	// Configure the validator to use json tags for field names in errors
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
	}

	// waitgroup which manages goroutines for starting and stopping HTTP server
	waitGroup, ctx := errgroup.WithContext(ctx)

	RunGinServer(ctx, waitGroup, config, processor)

	err := waitGroup.Wait()
	if err != nil {
		log.Fatal().Err(err).Msg("error from wait group")
	}
}

func RunGinServer(
	ctx context.Context,
	waitGroup *errgroup.Group,
	config util.Config,
	processor *pipeline.Processor,
) {
	store := tmpstore.NewStore(&config)

	service, err := api.NewService(config, processor, store)
	if err != nil {
		log.Error().Err(err).Msg("cannot create HTTP service")
		return
	}

	waitGroup.Go(func() error {
		log.Info().Msgf("start HTTP server at %s", config.HTTPServerAddress)

		err := service.Start()

		if err != nil {
			//http.ErrServerClosed is returned once the server begins shutting down
			// which is normal
			if errors.Is(err, http.ErrServerClosed) {
				return nil
			}
			log.Error().Err(err).Msg("cannot start HTTP server")
		}

		return err
	})

	waitGroup.Go(func() error {
		<-ctx.Done()

		log.Info().Msg("HTTP server: graceful shutdown")

		// give the server 5 secs to finish all his processes
		toCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		err := service.Shutdown(toCtx)

		if err != nil {
			log.Error().Err(err).Msg("cannot shutdown HTTP server gracefully")
		}

		// closing the redis connection
		if closer, ok := store.(io.Closer); ok {
			if err := closer.Close(); err != nil {
				log.Error().Err(err).Msg("cannot close the render cache")
			}
		}

		log.Info().Msg("HTTP server is stopped")

		return err
	})
}
