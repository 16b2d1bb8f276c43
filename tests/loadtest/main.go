package main

import (
	"bytes"
	"flag"
	"fmt"
	"io"
	"math/rand"
	"net"
	"net/http"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"cookingapp/internal/models"

	json "github.com/goccy/go-json"
)

var (
	baseURL      = flag.String("url", "http://127.0.0.1:8088", "cookingapp base url")
	numWorkers   = flag.Int("workers", 20, "concurrent clients")
	testDuration = flag.Duration("duration", 10*time.Second, "duration of each phase")
)

var httpClient = &http.Client{
	Timeout: 5 * time.Second,
	Transport: &http.Transport{
		MaxIdleConns:        200,
		MaxIdleConnsPerHost: 200,
		IdleConnTimeout:     30 * time.Second,
		DialContext: (&net.Dialer{
			Timeout:   2 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
	},
}

type result struct {
	endpoint string
	status   int
	latency  time.Duration
	err      bool
}

type stats struct {
	count     int64
	errors    int64
	latencies []time.Duration
}

func main() {
	flag.Parse()

	fmt.Println("=== CookingApp Load Test ===")
	fmt.Printf("Workers: %d | Duration: %s\n\n", *numWorkers, *testDuration)

	fmt.Print("Waiting for server... ")
	for i := 0; i < 30; i++ {
		resp, err := httpClient.Get(*baseURL + "/health")
		if err == nil {
			io.Copy(io.Discard, resp.Body)
			resp.Body.Close()
			break
		}
		if i == 29 {
			fmt.Println("FAILED: server not responding")
			return
		}
		time.Sleep(200 * time.Millisecond)
	}
	fmt.Println("OK")

	dishes, err := loadCatalog()
	if err != nil {
		fmt.Printf("FAILED: %s\n", err)
		return
	}
	fmt.Printf("Catalog: %d dishes\n", dishes)

	fmt.Println("\n--- Phase 1: Read-only (GET /state) ---")
	runPhase(*testDuration, func(rng *rand.Rand) result {
		return doGetState()
	})

	fmt.Println("\n--- Phase 2: Mixed intents (80% read, 20% select/reschedule/dismiss) ---")
	runPhase(*testDuration, func(rng *rand.Rand) result {
		r := rng.Float64()
		switch {
		case r < 0.80:
			return doGetState()
		case r < 0.90:
			return doSelect(rng, dishes)
		case r < 0.97:
			return doReschedule(rng)
		default:
			return doPost("/dismiss", nil, http.StatusOK)
		}
	})
}

func loadCatalog() (int, error) {
	resp, err := httpClient.Post(*baseURL+"/fetch?wait=1", "application/json", nil)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	var snap models.Snapshot
	if err = json.NewDecoder(resp.Body).Decode(&snap); err != nil {
		return 0, err
	}
	if snap.Status != models.StatusLoaded {
		msg := "unknown"
		if snap.FetchError != nil {
			msg = *snap.FetchError
		}
		return 0, fmt.Errorf("catalog not loaded: %s", msg)
	}
	return len(snap.Catalog), nil
}

func runPhase(duration time.Duration, workFn func(rng *rand.Rand) result) {
	results := make(chan result, 10000)
	var wg sync.WaitGroup
	var totalOps atomic.Int64
	stop := make(chan struct{})

	for i := 0; i < *numWorkers; i++ {
		wg.Add(1)
		go func(seed int64) {
			defer wg.Done()
			rng := rand.New(rand.NewSource(seed))
			for {
				select {
				case <-stop:
					return
				default:
					r := workFn(rng)
					totalOps.Add(1)
					results <- r
				}
			}
		}(rand.Int63() + int64(i))
	}

	allResults := make(map[string]*stats)
	done := make(chan struct{})
	go func() {
		for r := range results {
			s, ok := allResults[r.endpoint]
			if !ok {
				s = &stats{}
				allResults[r.endpoint] = s
			}
			s.count++
			if r.err {
				s.errors++
			}
			s.latencies = append(s.latencies, r.latency)
		}
		close(done)
	}()

	time.Sleep(duration)
	close(stop)
	wg.Wait()
	close(results)
	<-done

	printResults(allResults, duration)
}

func printResults(allResults map[string]*stats, duration time.Duration) {
	var totalOps int64
	var totalErrors int64

	endpoints := make([]string, 0, len(allResults))
	for ep := range allResults {
		endpoints = append(endpoints, ep)
	}
	sort.Strings(endpoints)

	fmt.Printf("\n  %-22s %8s %6s %10s %10s %10s %10s\n",
		"Endpoint", "Reqs", "Errs", "Avg", "P50", "P95", "P99")
	fmt.Println("  " + strings.Repeat("-", 88))

	for _, ep := range endpoints {
		s := allResults[ep]
		totalOps += s.count
		totalErrors += s.errors

		sort.Slice(s.latencies, func(i, j int) bool {
			return s.latencies[i] < s.latencies[j]
		})

		fmt.Printf("  %-22s %8d %6d %10s %10s %10s %10s\n",
			ep, s.count, s.errors,
			fmtDur(avgDuration(s.latencies)),
			fmtDur(percentile(s.latencies, 0.50)),
			fmtDur(percentile(s.latencies, 0.95)),
			fmtDur(percentile(s.latencies, 0.99)))
	}

	if totalOps == 0 {
		return
	}
	rps := float64(totalOps) / duration.Seconds()
	fmt.Println("  " + strings.Repeat("-", 88))
	fmt.Printf("  Total: %d reqs | Errors: %d (%.1f%%) | RPS: %.0f\n",
		totalOps, totalErrors, float64(totalErrors)/float64(totalOps)*100, rps)
}

func doGetState() result {
	start := time.Now()
	resp, err := httpClient.Get(*baseURL + "/state")
	lat := time.Since(start)
	if err != nil {
		return result{"GET /state", 0, lat, true}
	}
	io.Copy(io.Discard, resp.Body)
	resp.Body.Close()
	return result{"GET /state", resp.StatusCode, lat, resp.StatusCode != http.StatusOK}
}

func doSelect(rng *rand.Rand, dishes int) result {
	if dishes == 0 {
		return result{"POST /select", 0, 0, false}
	}
	r := doPost(fmt.Sprintf("/select?i=%d", rng.Intn(dishes)), nil, http.StatusOK)
	r.endpoint = "POST /select"
	return r
}

func doReschedule(rng *rand.Rand) result {
	period := models.PeriodAM
	if rng.Intn(2) == 1 {
		period = models.PeriodPM
	}
	t, _ := models.FormatScheduleTime(rng.Intn(12)+1, rng.Intn(60), period)
	body, _ := json.Marshal(map[string]string{"time": t})

	r := doPost("/reschedule", body, http.StatusOK)
	// no selection is a valid outcome under concurrent toggling
	if r.status == http.StatusConflict {
		r.err = false
	}
	return r
}

func doPost(path string, body []byte, want int) result {
	start := time.Now()
	resp, err := httpClient.Post(*baseURL+path, "application/json", bytes.NewReader(body))
	lat := time.Since(start)
	if err != nil {
		return result{"POST " + path, 0, lat, true}
	}
	io.Copy(io.Discard, resp.Body)
	resp.Body.Close()
	return result{"POST " + path, resp.StatusCode, lat, resp.StatusCode != want}
}

func avgDuration(d []time.Duration) time.Duration {
	if len(d) == 0 {
		return 0
	}
	var sum time.Duration
	for _, v := range d {
		sum += v
	}
	return sum / time.Duration(len(d))
}

func percentile(d []time.Duration, p float64) time.Duration {
	if len(d) == 0 {
		return 0
	}
	idx := int(float64(len(d)) * p)
	if idx >= len(d) {
		idx = len(d) - 1
	}
	return d[idx]
}

func fmtDur(d time.Duration) string {
	if d < time.Millisecond {
		return fmt.Sprintf("%dus", d.Microseconds())
	}
	return fmt.Sprintf("%.1fms", float64(d.Microseconds())/1000.0)
}
