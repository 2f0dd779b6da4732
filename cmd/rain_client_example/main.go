package main

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
)

func main() {
	fmt.Println("Rain API Client Example")
	fmt.Println("=======================")

	// Base URL for the API
	baseURL := "http://localhost:8080"

	query := "Koforidua"
	if len(os.Args) > 1 {
		query = os.Args[1]
	}

	fmt.Printf("Asking whether it will rain today in %q...\n", query)
	rainURL := fmt.Sprintf("%s/api/rain?q=%s", baseURL, url.QueryEscape(query))
	resp, err := http.Get(rainURL)
	if err != nil {
		fmt.Printf("Error calling rain API: %v\n", err)
		os.Exit(1)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		fmt.Printf("Request failed (%d): %s\n", resp.StatusCode, string(body))
		os.Exit(1)
	}

	var report struct {
		Label      string `json:"label"`
		Assessment struct {
			WillRain      bool    `json:"willRain"`
			ChancePercent int     `json:"chancePercent"`
			When          string  `json:"when"`
			AmountMm      float64 `json:"amountMm"`
		} `json:"assessment"`
	}
	if err := json.Unmarshal(body, &report); err != nil {
		fmt.Printf("Error parsing response: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("\nLocation: %s\n", report.Label)
	if report.Assessment.WillRain {
		fmt.Printf("Rain expected today (%d%% chance)\n", report.Assessment.ChancePercent)
		if report.Assessment.When != "" {
			fmt.Printf("First rainy hour around %s local time\n", report.Assessment.When)
		}
		if report.Assessment.AmountMm > 0 {
			fmt.Printf("Expected amount: %.1f mm\n", report.Assessment.AmountMm)
		}
	} else {
		fmt.Printf("No rain expected today (%d%% chance)\n", report.Assessment.ChancePercent)
	}
}
