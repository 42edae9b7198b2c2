// Package benchmark 对完整路由做并发压测，验证高并发下的响应和预约互斥
package benchmark

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"sort"
	"sync"
	"testing"
	"time"
)

// APIBenchmark 定义API压测参数
type APIBenchmark struct {
	BaseURL     string
	Concurrency int
	Requests    int
	AuthToken   string
	Client      *http.Client
}

// BenchmarkResult 定义压测结果
type BenchmarkResult struct {
	URL            string        `json:"url"`
	Method         string        `json:"method"`
	Concurrency    int           `json:"concurrency"`
	TotalRequests  int           `json:"total_requests"`
	SuccessCount   int           `json:"success_count"`
	FailureCount   int           `json:"failure_count"`
	TotalTime      time.Duration `json:"total_time"`
	AverageTime    time.Duration `json:"average_time"`
	MinTime        time.Duration `json:"min_time"`
	MaxTime        time.Duration `json:"max_time"`
	RequestsPerSec float64       `json:"requests_per_sec"`
	StatusCodes    map[int]int   `json:"status_codes"`
	Errors         []string      `json:"errors"`
}

// RequestResult 单个请求的结果
type RequestResult struct {
	Duration   time.Duration
	StatusCode int
	Error      error
}

// NewAPIBenchmark 创建压测实例，client 为 nil 时使用10秒超时的默认客户端
func NewAPIBenchmark(baseURL string, client *http.Client, concurrency, requests int, authToken string) *APIBenchmark {
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	return &APIBenchmark{
		BaseURL:     baseURL,
		Concurrency: concurrency,
		Requests:    requests,
		AuthToken:   authToken,
		Client:      client,
	}
}

// RunGET 并发执行GET请求
func (b *APIBenchmark) RunGET(path string) *BenchmarkResult {
	return b.runTest(http.MethodGet, b.BaseURL+path, nil)
}

// RunPOST 并发提交相同的请求体
func (b *APIBenchmark) RunPOST(path string, payload interface{}) *BenchmarkResult {
	return b.runJSON(http.MethodPost, path, payload)
}

// RunPUT 并发提交相同的更新请求
func (b *APIBenchmark) RunPUT(path string, payload interface{}) *BenchmarkResult {
	return b.runJSON(http.MethodPut, path, payload)
}

func (b *APIBenchmark) runJSON(method, path string, payload interface{}) *BenchmarkResult {
	url := b.BaseURL + path
	jsonData, err := json.Marshal(payload)
	if err != nil {
		return &BenchmarkResult{
			URL:    url,
			Method: method,
			Errors: []string{fmt.Sprintf("JSON编码错误: %v", err)},
		}
	}
	return b.runTest(method, url, jsonData)
}

// runTest 用信号量限制并发，收集每个请求的耗时和状态码
func (b *APIBenchmark) runTest(method, url string, payload []byte) *BenchmarkResult {
	results := make(chan RequestResult, b.Requests)
	var wg sync.WaitGroup
	limiter := make(chan struct{}, b.Concurrency)

	startTime := time.Now()

	for i := 0; i < b.Requests; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			limiter <- struct{}{}
			defer func() { <-limiter }()

			results <- b.do(method, url, payload)
		}()
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	result := &BenchmarkResult{
		URL:           url,
		Method:        method,
		Concurrency:   b.Concurrency,
		TotalRequests: b.Requests,
		MinTime:       1<<63 - 1,
		StatusCodes:   make(map[int]int),
	}

	var totalTime time.Duration
	completed := 0
	for r := range results {
		if r.Error != nil {
			result.FailureCount++
			result.Errors = append(result.Errors, r.Error.Error())
			continue
		}

		completed++
		totalTime += r.Duration
		if r.Duration < result.MinTime {
			result.MinTime = r.Duration
		}
		if r.Duration > result.MaxTime {
			result.MaxTime = r.Duration
		}

		result.StatusCodes[r.StatusCode]++
		if r.StatusCode >= 200 && r.StatusCode < 300 {
			result.SuccessCount++
		} else {
			result.FailureCount++
		}
	}

	result.TotalTime = time.Since(startTime)
	result.RequestsPerSec = float64(b.Requests) / result.TotalTime.Seconds()
	if completed > 0 {
		result.AverageTime = totalTime / time.Duration(completed)
	} else {
		result.MinTime = 0
	}
	return result
}

// do 发送单个请求
func (b *APIBenchmark) do(method, url string, payload []byte) RequestResult {
	start := time.Now()
	req, err := http.NewRequest(method, url, bytes.NewReader(payload))
	if err != nil {
		return RequestResult{Error: err}
	}

	req.Header.Set("Content-Type", "application/json")
	if b.AuthToken != "" {
		req.Header.Set("Authorization", "Bearer "+b.AuthToken)
	}

	resp, err := b.Client.Do(req)
	if err != nil {
		return RequestResult{Error: err}
	}
	defer resp.Body.Close()

	return RequestResult{
		Duration:   time.Since(start),
		StatusCode: resp.StatusCode,
	}
}

// SuccessRate 成功请求占比（百分比）
func (r *BenchmarkResult) SuccessRate() float64 {
	if r.TotalRequests == 0 {
		return 0
	}
	return float64(r.SuccessCount) / float64(r.TotalRequests) * 100
}

// Log 输出压测结果到测试日志
func (r *BenchmarkResult) Log(t testing.TB) {
	t.Helper()
	t.Logf("%s %s: 并发=%d 请求=%d 成功=%d 失败=%d 总耗时=%s 平均=%s 最小=%s 最大=%s QPS=%.2f",
		r.Method, r.URL, r.Concurrency, r.TotalRequests, r.SuccessCount, r.FailureCount,
		r.TotalTime, r.AverageTime, r.MinTime, r.MaxTime, r.RequestsPerSec)

	codes := make([]int, 0, len(r.StatusCodes))
	for code := range r.StatusCodes {
		codes = append(codes, code)
	}
	sort.Ints(codes)
	for _, code := range codes {
		t.Logf("  %d: %d", code, r.StatusCodes[code])
	}

	for i, err := range r.Errors {
		if i >= 5 {
			t.Logf("  ... 还有 %d 个错误", len(r.Errors)-5)
			break
		}
		t.Logf("  %s", err)
	}
}
