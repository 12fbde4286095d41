// Package agents holds the conventions that keep tmv friendly to
// scripts and AI coding agents: detection of headless invocations, the
// TMV_ROBOT / TMV_TEST environment marks, and the usage blurb printed
// for --robot-help or when stdout is not a terminal.
package agents

// agentBlurb documents the headless surface. It is the --robot-help
// output and the hint printed instead of the TUI when stdout is a pipe.
const agentBlurb = `# tmv headless interface

tmv renders an interactive treemap on a TTY. In scripts, pipelines, and
agent sessions use the robot flags instead; each prints indented JSON
on stdout and diagnostics on stderr.

## Dataset selection (required for every robot flag)

    tmv --fs <dir>                filesystem subtree, weight = bytes
    tmv --population <file.json>  population dataset, weight = people
    tmv <path>                    directory or .json, inferred

## Robot flags

    --robot-help     this text
    --robot-tree     {generated_at, source, total_weight, nodes, depth,
                      valid, tree} — the full weighted hierarchy; every
                      node carries name, path, weight, dir, children
    --robot-layout   {generated_at, width, height, placements} — one
                      placement per node: path, weight, x/y/w/h in cell
                      space, depth, index, leaf. Pass --width/--height
                      to size the canvas (defaults 80×24)
    --robot-stats    {generated_at, source, stats} — leaf-weight
                      distribution: count, total, mean, median, stddev,
                      p90/p99, top-decile share, leaves per depth
    --robot-drift    {generated_at, source, drift} — builds the dataset
                      twice, --drift-interval apart (default 1s), and
                      compares: added/removed/resized leaves plus
                      severity-ranked alerts. Exits like --check-drift

## Exit-code checks

    --check-drift    builds the dataset twice, --drift-interval apart,
                     and prints a one-line drift summary; exits 0 when
                     clean or informational, 2 on warnings, 1 on
                     critical drift

## Static exports (no TTY required)

    --export-svg FILE   slice-and-dice treemap as SVG
    --export-png FILE   same rendering rasterized
    --export-md FILE    markdown report: totals, top leaves, depths

Image exports take --width/--height in pixels (default 1200×800).

## Environment marks

    TMV_ROBOT=1   force headless behavior regardless of flags
    TMV_TEST=1    same, set by the test harness

Interactive-only features (mouse selection, deletion, ±10% resize,
clipboard copy) have no headless equivalent; mutations never persist.`

// Blurb returns the agent-facing usage text.
func Blurb() string {
	return agentBlurb
}
