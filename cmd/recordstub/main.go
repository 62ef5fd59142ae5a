// recordstub is a development API server that serves generated expense
// and income records in the shape the dashboard fetches.
package main

import (
	"encoding/json"
	"flag"
	"hash/fnv"
	"log"
	"math/rand"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/jask/moneyboard/internal/records"
)

var categories = []string{"Groceries", "Rent", "Transport", "Eating Out", "Utilities", "Entertainment", "Health"}

var sources = []string{"Salary", "Freelance", "Interest"}

func main() {
	addr := flag.String("addr", ":8080", "listen address")
	flag.Parse()

	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/expenses/{userID}", func(w http.ResponseWriter, req *http.Request) {
		writeJSON(w, sampleExpenses(chi.URLParam(req, "userID")))
	})
	r.Get("/income/{userID}", func(w http.ResponseWriter, req *http.Request) {
		writeJSON(w, sampleIncome(chi.URLParam(req, "userID")))
	})

	log.Printf("recordstub listening on %s", *addr)
	log.Fatal(http.ListenAndServe(*addr, r))
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("encode: %v", err)
	}
}

// rngFor keeps a user's data stable across requests so the dashboard
// doesn't reshuffle on every refresh.
func rngFor(userID string) *rand.Rand {
	h := fnv.New64a()
	h.Write([]byte(userID))
	return rand.New(rand.NewSource(int64(h.Sum64())))
}

func sampleExpenses(userID string) []records.Expense {
	rng := rngFor(userID)
	now := time.Now()
	out := make([]records.Expense, 0, 120)
	for day := 0; day < 120; day++ {
		date := now.AddDate(0, 0, -day)
		for i := 0; i < rng.Intn(3); i++ {
			cat := categories[rng.Intn(len(categories))]
			amount := 5 + rng.Float64()*80
			if cat == "Rent" {
				amount = 900 + rng.Float64()*200
			}
			out = append(out, records.Expense{
				ID:           uuid.NewString(),
				Date:         date.Format(records.DateLayout),
				Amount:       float64(int(amount*100)) / 100,
				CategoryName: cat,
				Description:  cat + " purchase",
			})
		}
	}
	return out
}

func sampleIncome(userID string) []records.Income {
	rng := rngFor(userID)
	now := time.Now()
	out := make([]records.Income, 0, 8)
	for month := 0; month < 4; month++ {
		payday := time.Date(now.Year(), now.Month(), 25, 0, 0, 0, 0, time.UTC).AddDate(0, -month, 0)
		out = append(out, records.Income{
			ID:     uuid.NewString(),
			Date:   payday.Format(records.DateLayout),
			Amount: 2600 + rng.Float64()*300,
			Source: sources[0],
		})
		if rng.Intn(2) == 0 {
			out = append(out, records.Income{
				ID:     uuid.NewString(),
				Date:   payday.AddDate(0, 0, -10).Format(records.DateLayout),
				Amount: 100 + rng.Float64()*400,
				Source: sources[1+rng.Intn(len(sources)-1)],
			})
		}
	}
	return out
}
