package database

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"time"

	_ "github.com/lib/pq"
)

var DB *sql.DB

// ─── Models ──────────────────────────────────────────────────────────────────

// TransportRoute is one pre-seeded route record. Amenities is stored as a
// JSON-encoded array; Duration is the display string and DurationMin the
// numeric value used for sorting.
type TransportRoute struct {
	ID            int     `json:"id"`
	Source        string  `json:"source"`
	Destination   string  `json:"destination"`
	Mode          string  `json:"mode"`
	Distance      string  `json:"distance"`
	Duration      string  `json:"duration"`
	DurationMin   int     `json:"duration_min"`
	Price         float64 `json:"price"`
	OperatorName  string  `json:"operator_name"`
	DepartureTime string  `json:"departure_time"`
	ArrivalTime   string  `json:"arrival_time"`
	Frequency     string  `json:"frequency"`
	AmenitiesJSON string  `json:"-"`
	Available     bool    `json:"available"`
	TransportMode int     `json:"transport_mode_id"`
}

// TripPlan is a stored AI-generated plan. PlanJSON holds the structured plan
// (or raw text when the model did not return JSON); PDFData is filled in on
// first download.
type TripPlan struct {
	ID        string    `json:"id"`
	Prompt    string    `json:"prompt"`
	PlanJSON  string    `json:"plan_json"`
	RawText   string    `json:"raw_text"`
	PDFData   []byte    `json:"pdf_data,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// ─── Init ─────────────────────────────────────────────────────────────────────

func InitDB() {
	dsn := buildDSN()

	var err error
	DB, err = sql.Open("postgres", dsn)
	if err != nil {
		log.Fatalf("❌ Failed to open database: %v", err)
	}

	DB.SetMaxOpenConns(10)
	DB.SetMaxIdleConns(5)
	DB.SetConnMaxLifetime(5 * time.Minute)

	// Hosted Postgres may take a moment to accept connections
	for i := 0; i < 10; i++ {
		if err = DB.Ping(); err == nil {
			break
		}
		log.Printf("⏳ Waiting for database... attempt %d/10: %v", i+1, err)
		time.Sleep(2 * time.Second)
	}
	if err != nil {
		log.Fatalf("❌ Failed to connect to database after retries: %v", err)
	}

	migrate()
	seedRoutes()
	log.Println("✅ Database connected and migrated")
}

func buildDSN() string {
	if url := os.Getenv("DATABASE_URL"); url != "" {
		return url
	}

	host := getEnv("DB_HOST", "localhost")
	port := getEnv("DB_PORT", "5432")
	user := getEnv("DB_USER", "postgres")
	pass := getEnv("DB_PASSWORD", "postgres")
	name := getEnv("DB_NAME", "wanderwise")
	sslmode := getEnv("DB_SSLMODE", "disable")

	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		host, port, user, pass, name, sslmode)
}

// ─── Migrations ───────────────────────────────────────────────────────────────

func migrate() {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS transport_modes (
			id   SERIAL PRIMARY KEY,
			name TEXT UNIQUE NOT NULL
		)`,

		`CREATE TABLE IF NOT EXISTS transport_routes (
			id                SERIAL PRIMARY KEY,
			source            TEXT NOT NULL,
			destination       TEXT NOT NULL,
			mode              TEXT NOT NULL,
			distance          TEXT,
			duration          TEXT,
			duration_min      INTEGER DEFAULT 0,
			price             NUMERIC(12,2) NOT NULL,
			operator_name     TEXT,
			departure_time    TEXT,
			arrival_time      TEXT,
			frequency         TEXT,
			amenities         TEXT,
			available         BOOLEAN DEFAULT TRUE,
			transport_mode_id INTEGER REFERENCES transport_modes(id)
		)`,

		`CREATE INDEX IF NOT EXISTS idx_transport_routes_endpoints
			ON transport_routes(source, destination)`,

		`CREATE TABLE IF NOT EXISTS trip_plans (
			id         TEXT PRIMARY KEY,
			prompt     TEXT NOT NULL,
			plan_json  TEXT,
			raw_text   TEXT,
			pdf_data   BYTEA,
			created_at TIMESTAMPTZ DEFAULT NOW()
		)`,

		`CREATE INDEX IF NOT EXISTS idx_trip_plans_created_at
			ON trip_plans(created_at DESC)`,
	}

	for _, m := range migrations {
		if _, err := DB.Exec(m); err != nil {
			log.Fatalf("❌ Migration failed: %v\nSQL: %s", err, m)
		}
	}
}

func seedRoutes() {
	var count int
	if err := DB.QueryRow(`SELECT COUNT(*) FROM transport_routes`).Scan(&count); err != nil {
		log.Printf("⚠️  Could not check transport_routes: %v", err)
		return
	}
	if count > 0 {
		return
	}

	modes := []string{"bus", "train", "flight"}
	modeIDs := map[string]int{}
	for _, m := range modes {
		var id int
		err := DB.QueryRow(`
			INSERT INTO transport_modes (name) VALUES ($1)
			ON CONFLICT (name) DO UPDATE SET name = EXCLUDED.name
			RETURNING id`, m).Scan(&id)
		if err != nil {
			log.Printf("⚠️  Could not seed transport mode %q: %v", m, err)
			return
		}
		modeIDs[m] = id
	}

	type seed struct {
		src, dst, mode, distance, duration  string
		durationMin                         int
		price                               float64
		operator, dep, arr, freq, amenities string
	}
	seeds := []seed{
		{"Kochi", "Trivandrum", "bus", "205 km", "5h 30m", 330, 450, "KSRTC", "06:00", "11:30", "Every 30 min", `["AC","Reclining Seats"]`},
		{"Kochi", "Trivandrum", "bus", "205 km", "5h", 300, 620, "Kallada Travels", "21:30", "02:30", "Daily", `["AC Sleeper","Charging Point"]`},
		{"Kochi", "Trivandrum", "train", "220 km", "4h 15m", 255, 280, "Indian Railways", "07:10", "11:25", "Daily", `["Sleeper","Pantry"]`},
		{"Trivandrum", "Kochi", "bus", "205 km", "5h 30m", 330, 450, "KSRTC", "06:30", "12:00", "Every 30 min", `["AC","Reclining Seats"]`},
		{"Kollam", "Goa", "bus", "720 km", "14h", 840, 1200, "Paulo Travels", "16:00", "06:00", "Daily", `["AC Sleeper","Blanket"]`},
		{"Kochi", "Goa", "bus", "690 km", "13h 30m", 810, 1350, "Paulo Travels", "17:00", "06:30", "Daily", `["AC Sleeper","Charging Point"]`},
		{"Kochi", "Goa", "flight", "540 km", "1h 20m", 80, 4100, "Air India Express", "10:40", "12:00", "Mon/Wed/Fri", `["Cabin Baggage 7kg"]`},
		{"Kochi", "Bangalore", "bus", "550 km", "10h 30m", 630, 1100, "VRL Travels", "20:00", "06:30", "Daily", `["AC Sleeper","Charging Point","Water Bottle"]`},
		{"Kochi", "Bangalore", "flight", "480 km", "1h 10m", 70, 3200, "IndiGo", "08:15", "09:25", "Daily", `["Cabin Baggage 7kg"]`},
		{"Bangalore", "Chennai", "train", "360 km", "5h", 300, 520, "Indian Railways", "06:00", "11:00", "Daily", `["AC Chair Car","Pantry"]`},
		{"Bangalore", "Chennai", "bus", "345 km", "6h 30m", 390, 750, "KPN Travels", "22:30", "05:00", "Daily", `["AC","WiFi"]`},
		{"Mumbai", "Goa", "train", "590 km", "8h 30m", 510, 640, "Indian Railways", "05:50", "14:20", "Daily", `["Sleeper","Pantry"]`},
		{"Mumbai", "Goa", "bus", "600 km", "11h", 660, 950, "Neeta Travels", "19:00", "06:00", "Daily", `["AC Sleeper","Blanket"]`},
		{"Delhi", "Manali", "bus", "540 km", "12h 30m", 750, 1450, "HRTC", "18:00", "06:30", "Daily", `["Volvo AC","Water Bottle"]`},
		{"Delhi", "Jaipur", "train", "310 km", "4h 30m", 270, 480, "Indian Railways", "06:05", "10:35", "Daily", `["AC Chair Car"]`},
	}

	for _, s := range seeds {
		_, err := DB.Exec(`
			INSERT INTO transport_routes
				(source, destination, mode, distance, duration, duration_min, price,
				 operator_name, departure_time, arrival_time, frequency, amenities,
				 available, transport_mode_id)
			VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,TRUE,$13)`,
			s.src, s.dst, s.mode, s.distance, s.duration, s.durationMin, s.price,
			s.operator, s.dep, s.arr, s.freq, s.amenities, modeIDs[s.mode])
		if err != nil {
			log.Printf("⚠️  Could not seed route %s→%s: %v", s.src, s.dst, err)
			return
		}
	}
	log.Printf("✅ Seeded %d transport routes", len(seeds))
}

// ─── Route queries ────────────────────────────────────────────────────────────

// QueryRoutes returns available routes matching source/destination by
// substring. Postgres ILIKE does the coarse filter; results are re-filtered
// case-insensitively in-process and sorted by price, then duration.
func QueryRoutes(ctx context.Context, source, destination, mode string) ([]TransportRoute, error) {
	query := `
		SELECT id, source, destination, mode, distance, duration, duration_min,
		       price, operator_name, departure_time, arrival_time, frequency,
		       COALESCE(amenities, ''), available, COALESCE(transport_mode_id, 0)
		FROM transport_routes
		WHERE available = TRUE
		  AND source ILIKE '%' || $1 || '%'
		  AND destination ILIKE '%' || $2 || '%'`
	args := []any{source, destination}
	if mode != "" {
		query += ` AND LOWER(mode) = LOWER($3)`
		args = append(args, mode)
	}

	rows, err := DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var routes []TransportRoute
	for rows.Next() {
		var r TransportRoute
		if err := rows.Scan(&r.ID, &r.Source, &r.Destination, &r.Mode, &r.Distance,
			&r.Duration, &r.DurationMin, &r.Price, &r.OperatorName, &r.DepartureTime,
			&r.ArrivalTime, &r.Frequency, &r.AmenitiesJSON, &r.Available, &r.TransportMode); err != nil {
			return nil, err
		}
		routes = append(routes, r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	routes = FilterRoutes(routes, source, destination, mode)
	SortRoutes(routes)
	return routes, nil
}

// ─── Trip plan CRUD ───────────────────────────────────────────────────────────

func SaveTripPlan(p *TripPlan) error {
	_, err := DB.Exec(`
		INSERT INTO trip_plans (id, prompt, plan_json, raw_text)
		VALUES ($1, $2, $3, $4)`,
		p.ID, p.Prompt, p.PlanJSON, p.RawText)
	return err
}

func GetTripPlan(id string) (*TripPlan, error) {
	p := &TripPlan{}
	err := DB.QueryRow(`
		SELECT id, prompt, COALESCE(plan_json, ''), COALESCE(raw_text, ''),
		       pdf_data, created_at
		FROM trip_plans WHERE id = $1`, id).
		Scan(&p.ID, &p.Prompt, &p.PlanJSON, &p.RawText, &p.PDFData, &p.CreatedAt)
	if err != nil {
		return nil, err
	}
	return p, nil
}

func UpdateTripPlanPDF(id string, pdfData []byte) error {
	_, err := DB.Exec(`UPDATE trip_plans SET pdf_data = $1 WHERE id = $2`, pdfData, id)
	return err
}

// ─── Helpers ──────────────────────────────────────────────────────────────────

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
