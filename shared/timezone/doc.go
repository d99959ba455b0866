// Package timezone provides timezone utilities for the application.
//
// Booking dates and slot clocks are shop-local: the same wall clock the
// barbershop operates on. All date parsing and weekday math for the slot
// grids goes through this package so a client running in another timezone
// still renders the shop's day correctly.
//
//  1. Basic usage after initialization:
//     now := timezone.Now()                    // Get current time in app timezone
//     appTime := timezone.ToAppTime(someTime)  // Convert any time to app timezone
//
//  2. Formatting times in app timezone:
//     formatted := timezone.Format(time.Now(), "2006-01-02 15:04:05")
//
//  3. Parsing times in app timezone:
//     t, err := timezone.Parse("2006-01-02", "2024-01-01")
//
// The timezone is configured via the APP_TIMEZONE environment variable using
// standard IANA names ("Europe/Rome", "UTC") and is automatically initialized
// when the package is imported.
package timezone
