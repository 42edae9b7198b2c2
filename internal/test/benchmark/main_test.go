package benchmark

import (
	"fmt"
	"net/http"
	"os"
	"strconv"
	"testing"

	"niddo-http-service/internal/app/middleware"
	"niddo-http-service/internal/domain/models"
	"niddo-http-service/internal/test/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 压测规模，可通过环境变量覆盖
var (
	concurrency = envInt("BENCH_CONCURRENCY", 10)
	requests    = envInt("BENCH_REQUESTS", 100)
)

func envInt(key string, def int) int {
	if v, err := strconv.Atoi(os.Getenv(key)); err == nil && v > 0 {
		return v
	}
	return def
}

type fixture struct {
	srv       *testutil.TestServer
	token     string
	condoID   uint
	amenityID uint
	userIDs   []uint
}

// setup 启动服务器并创建一个小区、一个设施和若干住户
func setup(t *testing.T, residents int) *fixture {
	t.Helper()
	if middleware.DevBypassEnabled() {
		t.Skip("built with the devauth tag")
	}
	if testing.Short() {
		t.Skip("skipping load test in short mode")
	}

	srv := testutil.NewServer(t, nil)
	token := srv.Login(t, testutil.AdminEmail, testutil.AdminPassword)
	f := &fixture{srv: srv, token: token}

	var created struct {
		ID uint `json:"id"`
	}

	status, env := srv.Do(t, http.MethodPost, "/condos/", token, map[string]string{"name": "Lakeview", "address": "1 Lake Rd"})
	require.Equal(t, http.StatusCreated, status)
	testutil.Decode(t, env, &created)
	f.condoID = created.ID

	status, env = srv.Do(t, http.MethodPost, "/amenities/", token, map[string]interface{}{
		"name": "Pool", "description": "Outdoor", "start_time": "08:00", "end_time": "20:00", "condo_id": f.condoID,
	})
	require.Equal(t, http.StatusCreated, status)
	testutil.Decode(t, env, &created)
	f.amenityID = created.ID

	for i := 0; i < residents; i++ {
		status, env = srv.Do(t, http.MethodPost, "/users/", token, map[string]interface{}{
			"name":     fmt.Sprintf("Resident %d", i),
			"email":    fmt.Sprintf("resident%d@example.com", i),
			"password": "password123",
			"role":     models.RoleResident,
			"condo_id": f.condoID,
		})
		require.Equal(t, http.StatusCreated, status)
		testutil.Decode(t, env, &created)
		f.userIDs = append(f.userIDs, created.ID)
	}
	return f
}

func (f *fixture) benchmark() *APIBenchmark {
	return NewAPIBenchmark(f.srv.URL, f.srv.Client(), concurrency, requests, f.token)
}

// TestCondoList 并发读取小区列表
func TestCondoList(t *testing.T) {
	f := setup(t, 0)

	result := f.benchmark().RunGET("/condos/?page=1&page_size=10")
	result.Log(t)

	assert.Equal(t, requests, result.SuccessCount, "成功率 %.2f%%", result.SuccessRate())
}

// TestAmenityDetail 并发读取设施详情
func TestAmenityDetail(t *testing.T) {
	f := setup(t, 0)

	result := f.benchmark().RunGET(fmt.Sprintf("/amenities/%d", f.amenityID))
	result.Log(t)

	assert.Equal(t, requests, result.SuccessCount, "成功率 %.2f%%", result.SuccessRate())
}

// TestConcurrentIdenticalReservations 同一时段的并发预约只有一个成功
func TestConcurrentIdenticalReservations(t *testing.T) {
	f := setup(t, 1)

	result := f.benchmark().RunPOST("/reservations/", map[string]interface{}{
		"user_id":    f.userIDs[0],
		"amenity_id": f.amenityID,
		"date":       "2024-07-01",
		"start_time": "09:00",
		"end_time":   "10:00",
	})
	result.Log(t)

	assert.Empty(t, result.Errors)
	assert.Equal(t, 1, result.StatusCodes[http.StatusCreated])
	assert.Equal(t, requests-1, result.StatusCodes[http.StatusConflict])
}

// TestConcurrentDisjointReservations 不同用户预约互不重叠的时段全部成功
func TestConcurrentDisjointReservations(t *testing.T) {
	const slots = 12
	f := setup(t, slots)

	errs := make(chan error, slots)
	for i := 0; i < slots; i++ {
		go func(i int) {
			b := NewAPIBenchmark(f.srv.URL, f.srv.Client(), 1, 1, f.token)
			result := b.RunPOST("/reservations/", map[string]interface{}{
				"user_id":    f.userIDs[i],
				"amenity_id": f.amenityID,
				"date":       "2024-07-01",
				"start_time": fmt.Sprintf("%02d:00", 8+i),
				"end_time":   fmt.Sprintf("%02d:00", 9+i),
			})
			if result.StatusCodes[http.StatusCreated] != 1 {
				errs <- fmt.Errorf("slot %d: status codes %v errors %v", i, result.StatusCodes, result.Errors)
				return
			}
			errs <- nil
		}(i)
	}

	for i := 0; i < slots; i++ {
		assert.NoError(t, <-errs)
	}

	status, env := f.srv.Do(t, http.MethodGet, fmt.Sprintf("/reservations/reservationsbyamenity/%d", f.amenityID), f.token, nil)
	require.Equal(t, http.StatusOK, status)
	var reservations []map[string]interface{}
	testutil.Decode(t, env, &reservations)
	assert.Len(t, reservations, slots)
}

// TestConcurrentUpdateAndCreate 改期与新建争抢同一时段时只有一方成功
func TestConcurrentUpdateAndCreate(t *testing.T) {
	const rounds = 10
	f := setup(t, 2)

	for i := 0; i < rounds; i++ {
		date := fmt.Sprintf("2024-08-%02d", i+1)

		var created struct {
			ID uint `json:"id"`
		}
		status, env := f.srv.Do(t, http.MethodPost, "/reservations/", f.token, map[string]interface{}{
			"user_id": f.userIDs[0], "amenity_id": f.amenityID, "date": date,
			"start_time": "11:00", "end_time": "12:00",
		})
		require.Equal(t, http.StatusCreated, status)
		testutil.Decode(t, env, &created)

		target := map[string]interface{}{
			"amenity_id": f.amenityID, "date": date, "start_time": "09:00", "end_time": "10:00",
		}
		move := map[string]interface{}{"user_id": f.userIDs[0]}
		book := map[string]interface{}{"user_id": f.userIDs[1]}
		for k, v := range target {
			move[k] = v
			book[k] = v
		}

		updates := make(chan *BenchmarkResult, 1)
		go func() {
			updates <- NewAPIBenchmark(f.srv.URL, f.srv.Client(), 1, 1, f.token).
				RunPUT(fmt.Sprintf("/reservations/%d", created.ID), move)
		}()
		creates := NewAPIBenchmark(f.srv.URL, f.srv.Client(), concurrency, concurrency, f.token).
			RunPOST("/reservations/", book)
		update := <-updates

		require.Empty(t, update.Errors)
		require.Empty(t, creates.Errors)
		winners := update.StatusCodes[http.StatusOK] + creates.StatusCodes[http.StatusCreated]
		losers := update.StatusCodes[http.StatusConflict] + creates.StatusCodes[http.StatusConflict]
		assert.Equal(t, 1, winners, "%s: update %v create %v", date, update.StatusCodes, creates.StatusCodes)
		assert.Equal(t, concurrency, losers, date)

		ids := holdingIDs(t, f, f.userIDs[1])
		if update.StatusCodes[http.StatusOK] == 1 {
			assert.Empty(t, ids, date)
		} else {
			assert.Len(t, ids, 1, date)
		}

		// 下一轮前清空该住户的预约
		for _, id := range ids {
			status, _ = f.srv.Do(t, http.MethodDelete, fmt.Sprintf("/reservations/%d", id), f.token, nil)
			require.Equal(t, http.StatusNoContent, status)
		}
	}
}

// holdingIDs 返回住户当前所有预约的ID
func holdingIDs(t *testing.T, f *fixture, userID uint) []uint {
	t.Helper()
	var rows []struct {
		ID uint `json:"id"`
	}
	status, env := f.srv.Do(t, http.MethodGet, fmt.Sprintf("/reservations/reservationsbyuser/%d", userID), f.token, nil)
	require.Equal(t, http.StatusOK, status)
	testutil.Decode(t, env, &rows)
	ids := make([]uint, 0, len(rows))
	for _, r := range rows {
		ids = append(ids, r.ID)
	}
	return ids
}
