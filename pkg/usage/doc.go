// Package usage provides the operator-facing audit trail of bot
// activity. Every handled request, whether answered, denied, or
// failed, becomes one usage record.
//
// # Records Are Content-Free
//
// Records exist for diagnostics and accounting, not conversation
// history. The prompt is stored only as a SHA-256 digest plus a byte
// length; the reply only as a byte length and an IRC line count.
// Message text never reaches the database, so the trail can answer
// "who is using the bot, how much, and is it healthy" without ever
// answering "what did they say".
//
// # Architecture
//
// The package splits into four parts:
//
//  1. Recorder (usage/recorder) - async write path from request handling
//  2. Stores (usage/storage) - SQLite persistence plus an in-memory store
//  3. Retention (usage/retention) - scheduled pruning of old records
//  4. Export (usage/export) - CSV/JSON dumps and summary stats for the CLI
//
// # Recording Flow
//
// Recording never blocks a request: the handler assembles a complete
// Record after the outcome is known and hands it to the recorder,
// which queues it for a background writer. A full queue drops the
// record and counts the drop in metrics rather than stalling the bot.
//
//	Request outcome known
//	     ↓
//	Recorder.Record (non-blocking enqueue)
//	     ↓
//	worker goroutine
//	     ↓
//	Store.Insert (SQLite, WAL mode)
//
// # Basic Usage
//
//	store, err := storage.NewSQLiteStore(&storage.SQLiteConfig{
//	    Path: "data/usage.db",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer store.Close()
//
//	rec := recorder.NewRecorder(store, recorder.DefaultConfig(), nil)
//	defer rec.Close()
//
//	rec.Record(&usage.Record{
//	    Nick:    "alice",
//	    Channel: "#help",
//	    Command: "ask",
//	    Outcome: usage.OutcomeDelivered,
//	})
//
// # Querying
//
//	since := time.Now().AddDate(0, 0, -7)
//	records, err := store.Query(ctx, &usage.Query{
//	    StartTime: &since,
//	    Outcome:   usage.OutcomeFailed,
//	})
//
// # Retention
//
//	pruner := retention.NewPruner(store, &retention.Config{
//	    RetentionDays: 90,
//	    PruneSchedule: "0 3 * * *",
//	}, nil)
//	pruner.Start(ctx)
//	defer pruner.Stop()
//
// # Thread Safety
//
// All types are safe for concurrent use. The recorder serializes
// writes through a single worker; stores guard their state internally;
// queries and exports are read-only.
package usage
