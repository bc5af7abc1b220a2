package cli

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/dwizi/crontz/internal/config"
	"github.com/dwizi/crontz/internal/crontz"
)

type conversionOutput struct {
	Expression string `json:"expression"`
	Timezone   string `json:"timezone"`
	DayShift   string `json:"day_shift"`
}

type nextOutput struct {
	Next     string `json:"next"`
	NextUnix int64  `json:"next_unix"`
	Timezone string `json:"timezone"`
}

func newToUTCCommand() *cobra.Command {
	return newConversionCommand(
		"to-utc <expression>",
		"Convert a local cron(...) expression to UTC",
		crontz.ConvertToUTC,
	)
}

func newToTimezoneCommand() *cobra.Command {
	return newConversionCommand(
		"to-timezone <expression>",
		"Convert a UTC cron(...) expression to a timezone",
		crontz.ConvertToTimezone,
	)
}

func newConversionCommand(use, short string, convert func(text, timezone string) (crontz.Conversion, error)) *cobra.Command {
	var (
		timezone string
		asJSON   bool
	)
	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.FromEnv()
			zone := resolveTimezone(timezone, cfg)
			conversion, err := convert(expressionArg(args), zone)
			if err != nil {
				return err
			}
			if asJSON {
				return writeOutputJSON(cmd, conversionOutput{
					Expression: conversion.Expression(),
					Timezone:   zone,
					DayShift:   conversion.Shift.String(),
				})
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), conversion.Expression())
			return err
		},
	}
	cmd.Flags().StringVarP(&timezone, "timezone", "z", "", "IANA timezone (defaults to CRONTZ_DEFAULT_TIMEZONE)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the result as JSON with day shift metadata")
	return cmd
}

func newNextCommand() *cobra.Command {
	var (
		timezone string
		format   string
		after    string
		asJSON   bool
	)
	cmd := &cobra.Command{
		Use:   "next <expression>",
		Short: "Print the next fire time of a UTC cron(...) expression",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.FromEnv()
			zone := resolveTimezone(timezone, cfg)
			pattern := strings.TrimSpace(format)
			if pattern == "" {
				pattern = cfg.DefaultFormat
			}
			resolver := crontz.NewResolver(crontz.WithScanLimit(cfg.NextScanLimit))
			anchor := time.Now().UTC()
			if raw := strings.TrimSpace(after); raw != "" {
				parsed, err := time.Parse(time.RFC3339, raw)
				if err != nil {
					return fmt.Errorf("invalid --after %q: %w", raw, err)
				}
				anchor = parsed
			}

			next, err := resolver.NextTime(expressionArg(args), zone, anchor)
			if err != nil {
				return err
			}
			if asJSON {
				return writeOutputJSON(cmd, nextOutput{
					Next:     crontz.FormatTime(next, pattern),
					NextUnix: next.Unix(),
					Timezone: zone,
				})
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), crontz.FormatTime(next, pattern))
			return err
		},
	}
	cmd.Flags().StringVarP(&timezone, "timezone", "z", "", "IANA timezone for the result (defaults to CRONTZ_DEFAULT_TIMEZONE)")
	cmd.Flags().StringVarP(&format, "format", "f", "", "output pattern, moment style (YYYY/MM/DD HH:mm) or strftime (%Y-%m-%d)")
	cmd.Flags().StringVar(&after, "after", "", "RFC 3339 anchor time (defaults to now)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the result as JSON")
	return cmd
}

// expressionArg rejoins an expression that was split across arguments.
func expressionArg(args []string) string {
	return strings.TrimSpace(strings.Join(args, " "))
}

func resolveTimezone(flag string, cfg config.Config) string {
	if zone := strings.TrimSpace(flag); zone != "" {
		return zone
	}
	return cfg.DefaultTimezone
}

func writeOutputJSON(cmd *cobra.Command, payload any) error {
	encoder := json.NewEncoder(cmd.OutOrStdout())
	encoder.SetIndent("", "  ")
	return encoder.Encode(payload)
}
