package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"
)

const baseURL = "http://localhost:8080"

// Smoke client: runs a consolidation build against a locally running server
// and prints the resulting snapshot.
func main() {
	time.Sleep(2 * time.Second) // give the server time to come up

	problemID := fmt.Sprintf("problem_smoke_%d", time.Now().Unix())

	outputs := []map[string]interface{}{
		{
			"paper_id": "arxiv-2301.00001",
			"distilled_items": []map[string]interface{}{
				{
					"type":        "technique",
					"name":        "Sieve method",
					"explanation": "Counts integers surviving congruence conditions.",
					"lean_status": "attempted",
				},
				{
					"type":         "theorem",
					"name":         "Main discrepancy bound",
					"dependencies": []string{"discrepancy"},
					"lean_status":  "verified",
					"lean_code":    "theorem main_bound : True := trivial",
				},
			},
		},
		{
			"paper_id": "arxiv-2301.00002",
			"distilled_items": []map[string]interface{}{
				{
					"type":        "technique",
					"name":        "sieve  Method",
					"lean_status": "not_attempted",
				},
				{
					"type":        "definition",
					"name":        "Discrepancy",
					"explanation": "Maximum imbalance of a signed sum over homogeneous progressions.",
					"lean_status": "verified",
					"lean_code":   "def discrepancy := 0",
				},
			},
		},
	}

	body := map[string]interface{}{
		"problem_id": problemID,
		"outputs":    outputs,
	}

	fmt.Println("Building graph...")
	resp := post("/graphs", body)
	fmt.Println(resp)
}

func post(path string, body interface{}) string {
	data, err := json.Marshal(body)
	if err != nil {
		fmt.Printf("marshal failed: %v\n", err)
		os.Exit(1)
	}
	res, err := http.Post(baseURL+path, "application/json", bytes.NewReader(data))
	if err != nil {
		fmt.Printf("POST %s failed: %v\n", path, err)
		os.Exit(1)
	}
	defer res.Body.Close()
	out, _ := io.ReadAll(res.Body)
	if res.StatusCode != http.StatusOK {
		fmt.Printf("POST %s returned %d: %s\n", path, res.StatusCode, out)
		os.Exit(1)
	}
	return string(out)
}
