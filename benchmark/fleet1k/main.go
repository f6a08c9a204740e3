package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"math"
	"math/rand"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
)

var maxEquipment int = 1000
var httpHostPort string = "127.0.0.1:1080"

var rnd *rand.Rand = rand.New(rand.NewSource(time.Now().UnixNano()))

var equipmentTypes = []string{"Excavator", "Bulldozer", "Crane", "Loader", "Grader"}

func main() {
	equipmentIDs := make([]string, maxEquipment)
	for i := 0; i < maxEquipment; i++ {
		equipmentIDs[i] = uuid.NewString()
	}
	fmt.Printf("generated %v equipment IDs\n", maxEquipment)

	resp, err := http.Get(fmt.Sprintf("http://%s/healthz", httpHostPort))
	if err != nil {
		log.Fatal("Failed to connect to HTTP server:", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		log.Fatal("HTTP server not available")
	}

	fmt.Printf("http server verified\n")

	var startTime time.Time
	var usedTime time.Duration

	startTime = time.Now()
	wg := sync.WaitGroup{}
	for i := 0; i < maxEquipment; i++ {
		i := i
		wg.Add(1)
		go func() {
			upsertEquipment(equipmentIDs[i])
			fmt.Printf("\rregistered equipment %v", i)
			wg.Done()
		}()
	}
	wg.Wait()
	usedTime = time.Since(startTime)

	fmt.Printf(
		"\rregistered %v equipment: used time=%v seconds, throughput=%v action/second\n",
		maxEquipment, usedTime.Seconds(), float64(maxEquipment)/usedTime.Seconds(),
	)

	startTime = time.Now()
	wg = sync.WaitGroup{}
	for i := 0; i < maxEquipment; i++ {
		i := i
		wg.Add(1)
		go func() {
			doAction(equipmentIDs[i])
			wg.Done()
		}()
	}
	wg.Wait()
	usedTime = time.Since(startTime)

	fmt.Printf(
		"\n\rdid actions for %v equipment: used time=%v seconds, throughput=%v action/second\n",
		maxEquipment, usedTime.Seconds(), float64(maxEquipment*4)/usedTime.Seconds(),
	)
}

func flipCoin() bool {
	return rnd.Int31n(100000)%2 == 0
}

func rndFloat64(min, max float64, decimal int) float64 {
	val := min + rnd.Float64()*(max-min)
	multiplier := float64(math.Pow10(decimal))
	return float64(math.Round(float64(val)*float64(multiplier))) / multiplier
}

func postJSON(url string, payload any) *http.Response {
	jsonData, _ := json.Marshal(payload)
	resp, err := http.Post(url, "application/json", bytes.NewBuffer(jsonData))
	if err != nil {
		panic(err)
	}
	return resp
}

func upsertEquipment(equipmentID string) {
	payload := map[string]any{
		"equipment_type": equipmentTypes[rnd.Intn(len(equipmentTypes))],
		"make":           "Komatsu",
		"model":          fmt.Sprintf("PC%v", 100+rnd.Intn(400)),
		"year":           2010 + rnd.Intn(15),
		"capacity":       rndFloat64(1.0, 50.0, 1),
		"fuel_type":      "DIESEL",
		"branch_id":      fmt.Sprintf("BR-%v", rnd.Intn(10)),
		"status":         "RENTED",
	}
	resp := postJSON(fmt.Sprintf("http://%s/equipment/%s", httpHostPort, equipmentID), payload)
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		panic(fmt.Sprintf("register equipment failed: %v", resp.StatusCode))
	}
}

func doAction(equipmentID string) {
	actions := []func(){
		genPostTelemetryAction(equipmentID),
		genPostUsageAction(equipmentID),
		genGetAnomaliesAction(equipmentID),
		genGetHealthAction(equipmentID),
	}
	actionNames := []string{
		"PostTelemetry",
		"PostUsage",
		"GetAnomalies",
		"GetHealth",
	}
	rnd.Shuffle(len(actions), func(i, j int) {
		actions[i], actions[j] = actions[j], actions[i]
		actionNames[i], actionNames[j] = actionNames[j], actionNames[i]
	})
	for index, action := range actions {
		action()
		fmt.Printf("\rexecuted action %v for equipment %v", actionNames[index], equipmentID)
		time.Sleep(time.Duration(100+rnd.Int31n(1000)) * time.Millisecond)
	}
}

func genPostTelemetryAction(equipmentID string) func() {
	return func() {
		now := time.Now()
		payload := map[string]any{
			"timestamp":          now.Format(time.RFC3339),
			"fuel_level":         rndFloat64(0.0, 100.0, 2),
			"engine_hours":       rndFloat64(100.0, 8000.0, 1),
			"gps_lat":            rndFloat64(-37.9, -37.7, 6),
			"gps_lon":            rndFloat64(144.8, 145.1, 6),
			"engine_temp":        rndFloat64(60.0, 130.0, 1),
			"hydraulic_pressure": rndFloat64(1000.0, 4000.0, 0),
			"is_engine_on":       flipCoin(),
		}
		resp := postJSON(fmt.Sprintf("http://%s/equipment/%s/telemetry", httpHostPort, equipmentID), payload)
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			fmt.Printf("\ntelemetry response status code != 200: %v\n", resp.StatusCode)
		}
	}
}

func genPostUsageAction(equipmentID string) func() {
	return func() {
		runtime := rndFloat64(0.0, 12.0, 1)
		payload := map[string]any{
			"date":             time.Now().Format(time.RFC3339),
			"runtime_hours":    runtime,
			"idle_hours":       rndFloat64(0.0, runtime, 1),
			"fuel_used_liters": rndFloat64(0.0, 200.0, 1),
			"fuel_eff_lph":     rndFloat64(5.0, 30.0, 2),
			"breakdown_hours":  rndFloat64(0.0, 1.0, 1),
			"utilization_pct":  rndFloat64(0.0, 100.0, 1),
		}
		resp := postJSON(fmt.Sprintf("http://%s/equipment/%s/usage", httpHostPort, equipmentID), payload)
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			fmt.Printf("\nusage response status code != 200: %v\n", resp.StatusCode)
		}
	}
}

func genGetAnomaliesAction(equipmentID string) func() {
	return func() {
		resp, err := http.Get(fmt.Sprintf("http://%s/equipment/%s/anomalies", httpHostPort, equipmentID))
		if err != nil {
			fmt.Printf("\nerror: %v\n", err)
			return
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			fmt.Printf("\nanomalies response status code != 200: %v\n", resp.StatusCode)
		}
	}
}

func genGetHealthAction(equipmentID string) func() {
	return func() {
		resp, err := http.Get(fmt.Sprintf("http://%s/equipment/%s/health", httpHostPort, equipmentID))
		if err != nil {
			fmt.Printf("\nerror: %v\n", err)
			return
		}
		defer resp.Body.Close()
		// health can legitimately 404 while an asset has little usage history
		if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusNotFound {
			fmt.Printf("\nhealth response status code != 200: %v\n", resp.StatusCode)
		}
	}
}
