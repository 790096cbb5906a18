// Command shorten отправляет ссылку в ретранслятор и печатает короткий URL.
//
// Пример:
//
//	shorten -copy https://example.com/very/long/path
//	echo https://example.com | shorten -endpoint http://localhost:8080/shorten
package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"io"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/Totarae/URLRelay/internal/client"
)

const defaultEndpoint = "http://localhost:8080/shorten"

type options struct {
	endpoint string
	copy     bool
	verbose  bool
	longURL  string
}

func parseOptions(args []string, stdin io.Reader) (options, error) {
	v := viper.New()
	v.SetDefault("RELAY_ENDPOINT", defaultEndpoint)
	v.AutomaticEnv()

	fs := flag.NewFlagSet("shorten", flag.ContinueOnError)
	endpoint := fs.String("endpoint", "", "relay endpoint URL")
	copyFlag := fs.Bool("copy", false, "copy the short URL to the clipboard")
	verbose := fs.Bool("v", false, "verbose logging")
	if err := fs.Parse(args); err != nil {
		return options{}, err
	}

	opts := options{
		endpoint: v.GetString("RELAY_ENDPOINT"),
		copy:     *copyFlag,
		verbose:  *verbose,
	}
	if *endpoint != "" {
		opts.endpoint = *endpoint
	}

	if fs.NArg() > 0 {
		opts.longURL = fs.Arg(0)
		return opts, nil
	}

	// Ссылка из stdin, если она не передана аргументом
	if stdin != nil {
		line, err := bufio.NewReader(stdin).ReadString('\n')
		if err != nil && line == "" {
			return opts, nil
		}
		opts.longURL = line
	}
	return opts, nil
}

func main() {
	opts, err := parseOptions(os.Args[1:], os.Stdin)
	if err != nil {
		log.Fatalf("Ошибка разбора аргументов: %v", err)
	}

	logger := zap.NewNop()
	if opts.verbose {
		if logger, err = zap.NewDevelopment(); err != nil {
			log.Fatalf("Ошибка инициализации логгера: %v", err)
		}
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	ctrl := client.NewController(opts.endpoint,
		client.NewTerminalDisplay(os.Stdout),
		client.NewOSC52Clipboard(os.Stdout),
		client.NewWriterNotifier(os.Stderr),
		logger,
	)

	if err = ctrl.Submit(ctx, strings.TrimSpace(opts.longURL)); err != nil {
		logger.Error("submit failed", zap.Error(err))
		return
	}

	if opts.copy {
		if err = ctrl.CopyShortURL(ctx); err != nil && !errors.Is(err, client.ErrNothingToCopy) {
			logger.Error("copy failed", zap.Error(err))
		}
	}

	if _, ok := ctrl.State().(client.ErrorState); ok {
		log.Fatal("не удалось сократить ссылку")
	}
}
