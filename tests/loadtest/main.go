package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"math/rand"
	"net"
	"net/http"
	"sort"
	"strings"
	"sync"
	"time"
)

const (
	baseURL      = "http://127.0.0.1:18080"
	numWorkers   = 20
	testDuration = 10 * time.Second
)

// The mock user pool. Point the daemon at a stubbed BGG endpoint before
// running this against real usernames, or the rate limiter will cap
// throughput immediately.
var usernames = []string{"alice", "bob", "carol", "dave", "erin", "frank"}

var sortKeys = []string{"name_asc", "name_desc", "rating_desc", "rating_asc", "year_desc"}
var groupModes = []string{"", "players", "rating", "bestPlayers"}

var httpClient = &http.Client{
	Timeout: 15 * time.Second,
	Transport: &http.Transport{
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 100,
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

// sessionIDs collects ids created during the run so GET /session has
// real targets.
var sessionIDs struct {
	mu  sync.Mutex
	ids []string
}

func main() {
	fmt.Println("=== bgmix Load Test ===")
	fmt.Printf("Workers: %d | Duration: %s | Users: %d\n\n", numWorkers, testDuration, len(usernames))

	fmt.Print("Waiting for server... ")
	for i := 0; i < 30; i++ {
		resp, err := httpClient.Get(baseURL + "/health")
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

	fmt.Println("\n--- Phase 1: Session churn (POST /sessions) ---")
	runPhase(testDuration, func(rng *rand.Rand) result {
		return doCreateSession(rng)
	})

	fmt.Println("\n--- Phase 2: Mixed load (60% browse, 25% create, 15% resolve) ---")
	runPhase(testDuration, func(rng *rand.Rand) result {
		r := rng.Float64()
		switch {
		case r < 0.60:
			return doGetCollections(rng)
		case r < 0.85:
			return doCreateSession(rng)
		default:
			return doGetSession(rng)
		}
	})

	fmt.Println("\n--- Phase 3: Browse-heavy load (cache exercise) ---")
	runPhase(testDuration, func(rng *rand.Rand) result {
		r := rng.Float64()
		switch {
		case r < 0.85:
			return doGetCollections(rng)
		case r < 0.95:
			return doGetSession(rng)
		default:
			return doHealth()
		}
	})
}

func runPhase(duration time.Duration, workFn func(rng *rand.Rand) result) {
	results := make(chan result, 10000)
	var wg sync.WaitGroup
	stop := make(chan struct{})

	for i := 0; i < numWorkers; i++ {
		wg.Add(1)
		go func(seed int64) {
			defer wg.Done()
			rng := rand.New(rand.NewSource(seed))
			for {
				select {
				case <-stop:
					return
				default:
					results <- workFn(rng)
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

	rps := float64(totalOps) / duration.Seconds()
	fmt.Println("  " + strings.Repeat("-", 88))
	fmt.Printf("  Total: %d reqs | Errors: %d (%.1f%%) | RPS: %.0f\n",
		totalOps, totalErrors, float64(totalErrors)/float64(totalOps)*100, rps)
}

func pickUsers(rng *rand.Rand) string {
	n := rng.Intn(3) + 1
	picked := make([]string, n)
	for i := range picked {
		picked[i] = usernames[rng.Intn(len(usernames))]
	}
	return strings.Join(picked, ",")
}

func doGetCollections(rng *rand.Rand) result {
	url := fmt.Sprintf("%s/collections?users=%s&sort=%s",
		baseURL, pickUsers(rng), sortKeys[rng.Intn(len(sortKeys))])
	if g := groupModes[rng.Intn(len(groupModes))]; g != "" {
		url += "&group=" + g
	}
	if rng.Float64() < 0.3 {
		url += fmt.Sprintf("&players=%d", rng.Intn(6)+1)
	}
	if rng.Float64() < 0.2 {
		url += fmt.Sprintf("&time=%d", rng.Intn(6)+1)
	}

	start := time.Now()
	resp, err := httpClient.Get(url)
	lat := time.Since(start)
	if err != nil {
		return result{"GET /collections", 0, lat, true}
	}
	io.Copy(io.Discard, resp.Body)
	resp.Body.Close()
	return result{"GET /collections", resp.StatusCode, lat, resp.StatusCode != 200}
}

func doCreateSession(rng *rand.Rand) result {
	body := map[string]interface{}{
		"name":      fmt.Sprintf("game night %d", rng.Intn(1000)),
		"usernames": strings.Split(pickUsers(rng), ","),
		"sort":      sortKeys[rng.Intn(len(sortKeys))],
	}
	if rng.Float64() < 0.5 {
		body["criteria"] = map[string]interface{}{"numberOfPlayers": rng.Intn(6) + 1}
	}

	data, _ := json.Marshal(body)
	start := time.Now()
	resp, err := httpClient.Post(baseURL+"/sessions", "application/json", bytes.NewReader(data))
	lat := time.Since(start)
	if err != nil {
		return result{"POST /sessions", 0, lat, true}
	}
	defer resp.Body.Close()

	if resp.StatusCode == 201 {
		var created struct {
			ID string `json:"id"`
		}
		if json.NewDecoder(resp.Body).Decode(&created) == nil && created.ID != "" {
			sessionIDs.mu.Lock()
			sessionIDs.ids = append(sessionIDs.ids, created.ID)
			sessionIDs.mu.Unlock()
		}
	} else {
		io.Copy(io.Discard, resp.Body)
	}
	return result{"POST /sessions", resp.StatusCode, lat, resp.StatusCode != 201}
}

func doGetSession(rng *rand.Rand) result {
	sessionIDs.mu.Lock()
	var id string
	if len(sessionIDs.ids) > 0 {
		id = sessionIDs.ids[rng.Intn(len(sessionIDs.ids))]
	}
	sessionIDs.mu.Unlock()
	if id == "" {
		return doCreateSession(rng)
	}

	start := time.Now()
	resp, err := httpClient.Get(baseURL + "/session?id=" + id)
	lat := time.Since(start)
	if err != nil {
		return result{"GET /session", 0, lat, true}
	}
	io.Copy(io.Discard, resp.Body)
	resp.Body.Close()
	return result{"GET /session", resp.StatusCode, lat, resp.StatusCode != 200}
}

func doHealth() result {
	start := time.Now()
	resp, err := httpClient.Get(baseURL + "/health")
	lat := time.Since(start)
	if err != nil {
		return result{"GET /health", 0, lat, true}
	}
	io.Copy(io.Discard, resp.Body)
	resp.Body.Close()
	return result{"GET /health", resp.StatusCode, lat, resp.StatusCode != 200}
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
		return fmt.Sprintf("%dµs", d.Microseconds())
	}
	return fmt.Sprintf("%.1fms", float64(d.Microseconds())/1000.0)
}
