package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"math/rand"
	"net/http"
	"strings"
	"sync"
	"time"
)

// PurchaseItem is one product line in the purchase payload
type PurchaseItem struct {
	ProductRef string `json:"productRef"`
	Name       string `json:"name"`
	Quantity   int    `json:"quantity"`
	UnitPrice  string `json:"unitPrice"`
}

// ShippingAddress is the delivery destination in the purchase payload
type ShippingAddress struct {
	Line1   string `json:"line1"`
	City    string `json:"city"`
	Country string `json:"country"`
}

// Purchase is the purchase request payload
type Purchase struct {
	Items           []PurchaseItem  `json:"items"`
	ShippingAddress ShippingAddress `json:"shippingAddress"`
	Subtotal        string          `json:"subtotal"`
	Total           string          `json:"total"`
	WalletAddress   string          `json:"walletAddress"`
	Channel         string          `json:"channel"`
}

// TestResult contains metrics for a single request
type TestResult struct {
	Success      bool
	ResponseTime time.Duration
	StatusCode   int
	Error        error
}

// TestStats contains aggregated test statistics
type TestStats struct {
	TotalRequests      int
	SuccessfulRequests int
	FailedRequests     int
	TotalTime          time.Duration
	MinResponseTime    time.Duration
	MaxResponseTime    time.Duration
	TotalResponseTime  time.Duration
	ResponseTimes      []time.Duration
	ErrorCounts        map[string]int
	WalletStats        map[string]int // Track requests per wallet
	ScenarioStats      map[string]int // Track requests per basket
	Lock               sync.Mutex
}

// BasketScenario defines one purchase basket shape
type BasketScenario struct {
	Name     string // For stats tracking
	Items    []PurchaseItem
	Subtotal string
}

func main() {

	// Define command line flags
	concurrency := flag.Int("c", 5, "Number of concurrent goroutines")
	totalRequests := flag.Int("n", 100, "Total number of requests to make")
	walletsStr := flag.String("w", "0.0.1001,0.0.1002,0.0.1003", "Comma-separated list of wallet addresses to distribute load across")
	baseURL := flag.String("url", "http://localhost:8080", "Base URL for the API")
	channel := flag.String("channel", "web", "Purchase channel (web, chat, or bot)")
	delayMs := flag.Int("delay", 100, "Delay between requests in milliseconds")
	targetTps := flag.Float64("target", 30, "Throughput threshold for the pass/fail conclusion")
	flag.Parse()

	// Parse wallet addresses
	var wallets []string
	for _, w := range strings.Split(*walletsStr, ",") {
		if w = strings.TrimSpace(w); w != "" {
			wallets = append(wallets, w)
		}
	}
	if len(wallets) == 0 {
		wallets = []string{"0.0.1001"}
	}

	// Define purchase basket scenarios
	scenarios := []BasketScenario{
		{"Single Small", []PurchaseItem{
			{"sku-sticker", "Sticker Pack", 1, "4.00"},
		}, "4.00"},
		{"Single Medium", []PurchaseItem{
			{"sku-mug", "Coffee Mug", 1, "12.50"},
		}, "12.50"},
		{"Single Large", []PurchaseItem{
			{"sku-hoodie", "Hoodie", 1, "45.00"},
		}, "45.00"},
		{"Multi Small", []PurchaseItem{
			{"sku-sticker", "Sticker Pack", 2, "4.00"},
			{"sku-pin", "Enamel Pin", 1, "6.00"},
		}, "14.00"},
		{"Multi Large", []PurchaseItem{
			{"sku-hoodie", "Hoodie", 1, "45.00"},
			{"sku-mug", "Coffee Mug", 2, "12.50"},
		}, "70.00"},
	}

	fmt.Printf("Load testing API across %d wallets: %v\n", len(wallets), wallets)
	fmt.Printf("Basket scenarios: %d different combinations\n", len(scenarios))
	fmt.Printf("Concurrency: %d goroutines\n", *concurrency)
	fmt.Printf("Total requests: %d\n", *totalRequests)
	fmt.Printf("Delay between requests: %d ms\n", *delayMs)

	// Initialize test statistics
	stats := &TestStats{
		TotalRequests:   *totalRequests,
		MinResponseTime: time.Hour, // Start with a high value that will be replaced
		ErrorCounts:     make(map[string]int),
		ResponseTimes:   make([]time.Duration, 0, *totalRequests),
		WalletStats:     make(map[string]int),
		ScenarioStats:   make(map[string]int),
	}

	// Initialize stats for each wallet
	for _, w := range wallets {
		stats.WalletStats[w] = 0
	}

	// Initialize stats for each scenario
	for _, scenario := range scenarios {
		stats.ScenarioStats[scenario.Name] = 0
	}

	// Channel to collect results
	results := make(chan TestResult, *totalRequests)

	// Channel to distribute work
	jobs := make(chan int, *totalRequests)

	// Start worker goroutines
	var wg sync.WaitGroup
	fmt.Println("Starting worker goroutines...")
	for i := 0; i < *concurrency; i++ {
		wg.Add(1)
		go func(workerID int) {
			defer wg.Done()
			worker(*baseURL, *channel, *delayMs, wallets, scenarios, jobs, results, stats)
		}(i)
	}

	// Fill the jobs channel
	go func() {
		for i := 0; i < *totalRequests; i++ {
			jobs <- i
		}
		close(jobs)
	}()

	// Start a goroutine to collect results
	go func() {
		for result := range results {
			stats.Lock.Lock()
			if result.Success {
				stats.SuccessfulRequests++
			} else {
				stats.FailedRequests++
				errMsg := "unknown"
				if result.Error != nil {
					errMsg = result.Error.Error()
				}
				stats.ErrorCounts[errMsg]++
			}

			stats.ResponseTimes = append(stats.ResponseTimes, result.ResponseTime)
			stats.TotalResponseTime += result.ResponseTime

			if result.ResponseTime < stats.MinResponseTime {
				stats.MinResponseTime = result.ResponseTime
			}
			if result.ResponseTime > stats.MaxResponseTime {
				stats.MaxResponseTime = result.ResponseTime
			}
			stats.Lock.Unlock()
		}
	}()

	// Start the timer
	startTime := time.Now()
	fmt.Println("Test running...")

	// Print progress periodically
	ticker := time.NewTicker(1 * time.Second)
	go func() {
		for range ticker.C {
			stats.Lock.Lock()
			completed := stats.SuccessfulRequests + stats.FailedRequests
			if completed > 0 {
				fmt.Printf("Progress: %d/%d requests completed (%.1f%%)\n",
					completed, stats.TotalRequests, float64(completed)/float64(stats.TotalRequests)*100)
			}
			stats.Lock.Unlock()
		}
	}()

	// Wait for all workers to finish
	wg.Wait()
	close(results)
	ticker.Stop()

	// Calculate the total test time
	stats.TotalTime = time.Since(startTime)

	// Print results
	printResults(stats, *targetTps)
}

func worker(baseURL, channel string, delayMs int, wallets []string,
	scenarios []BasketScenario, jobs <-chan int, results chan<- TestResult, stats *TestStats) {

	client := &http.Client{
		Timeout: 10 * time.Second,
	}

	apiURL := baseURL + "/api/v1/purchases"

	for range jobs {
		// Optional delay between requests to prevent rate limiting
		if delayMs > 0 {
			time.Sleep(time.Duration(delayMs) * time.Millisecond)
		}

		// Randomly select a wallet
		wallet := wallets[rand.Intn(len(wallets))]

		// Randomly select a basket scenario
		scenario := scenarios[rand.Intn(len(scenarios))]

		// Update stats for which wallet and scenario was selected
		stats.Lock.Lock()
		stats.WalletStats[wallet]++
		stats.ScenarioStats[scenario.Name]++
		stats.Lock.Unlock()

		// Purchases without a payment claim land as pending orders, so the
		// run needs no prior deposits
		purchase := Purchase{
			Items: scenario.Items,
			ShippingAddress: ShippingAddress{
				Line1:   "1 Load Test Lane",
				City:    "Kathmandu",
				Country: "NP",
			},
			Subtotal:      scenario.Subtotal,
			Total:         scenario.Subtotal,
			WalletAddress: wallet,
			Channel:       channel,
		}

		jsonData, err := json.Marshal(purchase)
		if err != nil {
			results <- TestResult{Success: false, Error: err}
			continue
		}

		// Create request
		req, err := http.NewRequest("POST", apiURL, bytes.NewBuffer(jsonData))
		if err != nil {
			results <- TestResult{Success: false, Error: err}
			continue
		}

		// Set headers
		req.Header.Set("Content-Type", "application/json")

		// Send the request and measure response time
		startTime := time.Now()
		resp, err := client.Do(req)
		responseTime := time.Since(startTime)

		result := TestResult{
			ResponseTime: responseTime,
		}

		if err != nil {
			result.Success = false
			result.Error = err
		} else {
			statusCode := resp.StatusCode
			result.StatusCode = statusCode
			result.Success = (statusCode >= 200 && statusCode < 300)
			if !result.Success {
				result.Error = fmt.Errorf("HTTP status code %d", statusCode)
			}
			resp.Body.Close()
		}

		results <- result
	}
}

func printResults(stats *TestStats, targetTps float64) {
	// Calculate theoretical TPS (ignores actual delays between requests)
	rawTps := float64(stats.SuccessfulRequests) / stats.TotalTime.Seconds()

	// Calculate TPS if all requests were successful
	theoreticalTps := float64(stats.TotalRequests) / stats.TotalTime.Seconds()

	// Calculate success rate adjusted TPS
	adjustedTps := theoreticalTps * (float64(stats.SuccessfulRequests) / float64(stats.TotalRequests))

	// Calculate average response time
	var avgResponseTime time.Duration
	if len(stats.ResponseTimes) > 0 {
		avgResponseTime = stats.TotalResponseTime / time.Duration(len(stats.ResponseTimes))
	}

	// Calculate percentiles
	var p50, p90, p95, p99 time.Duration
	if len(stats.ResponseTimes) > 0 {
		// Sort the response times
		sortedTimes := make([]time.Duration, len(stats.ResponseTimes))
		copy(sortedTimes, stats.ResponseTimes)

		// Simple bubble sort (OK for small datasets)
		for i := 0; i < len(sortedTimes); i++ {
			for j := i + 1; j < len(sortedTimes); j++ {
				if sortedTimes[i] > sortedTimes[j] {
					sortedTimes[i], sortedTimes[j] = sortedTimes[j], sortedTimes[i]
				}
			}
		}

		p50 = sortedTimes[len(sortedTimes)*50/100]
		p90 = sortedTimes[len(sortedTimes)*90/100]
		p95 = sortedTimes[len(sortedTimes)*95/100]
		p99 = sortedTimes[len(sortedTimes)*99/100]
	}

	// Print results
	fmt.Println("\n================= TEST RESULTS =================")
	fmt.Printf("Total Requests:      %d\n", stats.TotalRequests)
	fmt.Printf("Successful Requests: %d (%.1f%%)\n", stats.SuccessfulRequests,
		float64(stats.SuccessfulRequests)/float64(stats.TotalRequests)*100)
	fmt.Printf("Failed Requests:     %d (%.1f%%)\n", stats.FailedRequests,
		float64(stats.FailedRequests)/float64(stats.TotalRequests)*100)
	fmt.Printf("Total Test Time:     %.2f seconds\n", stats.TotalTime.Seconds())

	fmt.Println("\n----------------- PERFORMANCE -----------------")
	fmt.Printf("Raw TPS:             %.2f (successful requests / total time)\n", rawTps)
	fmt.Printf("Theoretical TPS:     %.2f (if all requests were successful)\n", theoreticalTps)
	fmt.Printf("Success-adjusted TPS: %.2f (theoretical * success rate)\n", adjustedTps)

	fmt.Println("\n----------------- RESPONSE TIMES -----------------")
	fmt.Printf("Average Response:    %v\n", avgResponseTime)
	fmt.Printf("Minimum Response:    %v\n", stats.MinResponseTime)
	fmt.Printf("Maximum Response:    %v\n", stats.MaxResponseTime)
	fmt.Printf("P50 Response:        %v\n", p50)
	fmt.Printf("P90 Response:        %v\n", p90)
	fmt.Printf("P95 Response:        %v\n", p95)
	fmt.Printf("P99 Response:        %v\n", p99)

	// Print wallet distribution
	fmt.Println("\n----------------- WALLET DISTRIBUTION -----------------")
	totalWallets := 0
	for _, count := range stats.WalletStats {
		totalWallets += count
	}
	for wallet, count := range stats.WalletStats {
		if count > 0 {
			fmt.Printf("Wallet %s:    %d requests (%.1f%%)\n", wallet, count,
				float64(count)/float64(totalWallets)*100)
		}
	}

	// Print scenario distribution
	fmt.Println("\n----------------- SCENARIO DISTRIBUTION -----------------")
	totalScenarios := 0
	for _, count := range stats.ScenarioStats {
		totalScenarios += count
	}
	for scenario, count := range stats.ScenarioStats {
		if count > 0 {
			fmt.Printf("%-15s: %d requests (%.1f%%)\n", scenario, count,
				float64(count)/float64(totalScenarios)*100)
		}
	}

	// Print error distribution if there were errors
	if stats.FailedRequests > 0 {
		fmt.Println("\n----------------- ERROR DISTRIBUTION -----------------")
		for errMsg, count := range stats.ErrorCounts {
			fmt.Printf("%-40s: %d (%.1f%%)\n", errMsg, count,
				float64(count)/float64(stats.TotalRequests)*100)
		}
	}

	// Final conclusion
	fmt.Println("\n================= CONCLUSION =================")
	if theoreticalTps >= targetTps {
		fmt.Printf("✅ SYSTEM CAN THEORETICALLY EXCEED the %.0f TPS threshold (%.2f TPS)\n", targetTps, theoreticalTps)

		if rawTps < targetTps {
			fmt.Println("⚠️ But rate limiting or other issues are preventing full performance")
		}
	} else {
		fmt.Printf("❌ SYSTEM DOES NOT MEET the %.0f TPS threshold (%.2f TPS)\n", targetTps, theoreticalTps)
	}
	fmt.Println("================================================")
}
