// Package retention prunes old findings on a cron schedule.
package retention
