// Package flows defines every conversation flow of the assistant: the
// step handlers, the commands that start them, and the typed data each
// flow carries between steps. Flows validate input before mutating
// anything, perform at most one coherent mutation per turn, and either
// advance to a fixed next step or terminate. Registration order of the
// command table is the dispatch order.
package flows
