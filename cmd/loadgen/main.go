// loadgen нагружает ленты чтением, чтобы видеть эффект кеша главной страницы.
package main

import (
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"sync"
	"sync/atomic"
	"syscall"
	"time"

	"yatube/logger"

	"github.com/brianvoe/gofakeit/v7"
)

type Stats struct {
	TotalRequests   int64
	SuccessRequests int64
	FailedRequests  int64
	TotalDuration   int64
	IndexRequests   int64
	IndexDuration   int64
}

type Config struct {
	BaseURL        string
	Workers        int
	Duration       int
	Requests       int
	Groups         []string
	Users          []string
	MaxPage        int
	RequestsPerSec int
}

var stats Stats

func main() {
	config := parseFlags()
	l := logger.L()
	l.Info().Interface("config", config).Msg("starting load generator")

	done := make(chan struct{})
	var once sync.Once
	stop := func() { once.Do(func() { close(done) }) }

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	requestsPerWorker := config.RequestsPerSec / config.Workers
	if requestsPerWorker == 0 {
		requestsPerWorker = 1
	}

	var wg sync.WaitGroup
	for i := 0; i < config.Workers; i++ {
		wg.Add(1)
		go worker(i, config, requestsPerWorker, done, stop, &wg)
	}

	go printStats(done)

	if config.Duration > 0 {
		go func() {
			time.Sleep(time.Duration(config.Duration) * time.Second)
			stop()
		}()
	}
	go func() {
		<-sigChan
		l.Info().Msg("received interrupt signal, shutting down")
		stop()
	}()

	wg.Wait()
	printFinalStats()
}

func parseFlags() Config {
	config := Config{}
	var groups, users string

	flag.StringVar(&config.BaseURL, "url", "http://localhost:8080", "Yatube base URL")
	flag.IntVar(&config.Workers, "workers", 10, "Number of concurrent workers")
	flag.IntVar(&config.Duration, "duration", 60, "Test duration in seconds (0 for infinite)")
	flag.IntVar(&config.Requests, "requests", 0, "Total requests to send (0 for infinite)")
	flag.StringVar(&groups, "groups", "", "Comma-separated group slugs")
	flag.StringVar(&users, "users", "", "Comma-separated usernames")
	flag.IntVar(&config.MaxPage, "max-page", 3, "Highest page number to request")
	flag.IntVar(&config.RequestsPerSec, "rps", 100, "Requests per second target")
	flag.Parse()

	config.Groups = splitList(groups)
	config.Users = splitList(users)
	if config.Workers < 1 {
		config.Workers = 1
	}
	if config.MaxPage < 1 {
		config.MaxPage = 1
	}
	return config
}

func splitList(raw string) []string {
	var out []string
	for _, item := range strings.Split(raw, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

// pickPath выбирает страницу; главная запрашивается чаще остальных
func pickPath(config Config) (string, bool) {
	page := gofakeit.Number(1, config.MaxPage)
	switch n := gofakeit.Number(0, 9); {
	case n < 6:
		return fmt.Sprintf("/?page=%d", page), true
	case n < 8 && len(config.Groups) > 0:
		return fmt.Sprintf("/group/%s/?page=%d", gofakeit.RandomString(config.Groups), page), false
	case len(config.Users) > 0:
		return fmt.Sprintf("/profile/%s/?page=%d", gofakeit.RandomString(config.Users), page), false
	default:
		return fmt.Sprintf("/?page=%d", page), true
	}
}

func worker(id int, config Config, requestsPerSec int, done <-chan struct{}, stop func(), wg *sync.WaitGroup) {
	defer wg.Done()

	client := &http.Client{Timeout: 10 * time.Second}
	ticker := time.NewTicker(time.Second / time.Duration(requestsPerSec))
	defer ticker.Stop()

	sent := 0
	for {
		select {
		case <-done:
			logger.L().Debug().Int("worker", id).Int("sent", sent).Msg("worker stopping")
			return
		case <-ticker.C:
			if config.Requests > 0 && int(atomic.LoadInt64(&stats.TotalRequests)) >= config.Requests {
				stop()
				return
			}

			path, isIndex := pickPath(config)
			start := time.Now()
			err := get(client, config.BaseURL+path)
			duration := time.Since(start)
			sent++

			atomic.AddInt64(&stats.TotalRequests, 1)
			atomic.AddInt64(&stats.TotalDuration, duration.Microseconds())
			if isIndex {
				atomic.AddInt64(&stats.IndexRequests, 1)
				atomic.AddInt64(&stats.IndexDuration, duration.Microseconds())
			}
			if err != nil {
				atomic.AddInt64(&stats.FailedRequests, 1)
				logger.L().Debug().Err(err).Str("path", path).Msg("request failed")
			} else {
				atomic.AddInt64(&stats.SuccessRequests, 1)
			}
		}
	}
}

func get(client *http.Client, url string) error {
	resp, err := client.Get(url)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d: %s", resp.StatusCode, string(body))
	}
	return nil
}

func avg(total, n int64) float64 {
	if n == 0 {
		return 0
	}
	return float64(total) / float64(n) / 1000
}

func printStats(done <-chan struct{}) {
	ticker := time.NewTicker(5 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-done:
			return
		case <-ticker.C:
			total := atomic.LoadInt64(&stats.TotalRequests)
			logger.L().Info().
				Int64("total", total).
				Int64("success", atomic.LoadInt64(&stats.SuccessRequests)).
				Int64("failed", atomic.LoadInt64(&stats.FailedRequests)).
				Float64("avg_latency_ms", avg(atomic.LoadInt64(&stats.TotalDuration), total)).
				Float64("avg_index_latency_ms", avg(atomic.LoadInt64(&stats.IndexDuration), atomic.LoadInt64(&stats.IndexRequests))).
				Msg("stats")
		}
	}
}

func printFinalStats() {
	total := atomic.LoadInt64(&stats.TotalRequests)
	success := atomic.LoadInt64(&stats.SuccessRequests)

	var successRate float64
	if total > 0 {
		successRate = float64(success) / float64(total) * 100
	}

	logger.L().Info().
		Int64("total", total).
		Int64("success", success).
		Int64("failed", atomic.LoadInt64(&stats.FailedRequests)).
		Float64("success_rate", successRate).
		Float64("avg_latency_ms", avg(atomic.LoadInt64(&stats.TotalDuration), total)).
		Float64("avg_index_latency_ms", avg(atomic.LoadInt64(&stats.IndexDuration), atomic.LoadInt64(&stats.IndexRequests))).
		Msg("final statistics")
}
