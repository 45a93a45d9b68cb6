// Package scoring blends heuristic and AI match scores into a final score
// with a human-readable explanation, and ranks scored jobs deterministically.
//
// The heuristic score arrives from an external ranking collaborator; when an
// AI payload is present the final score is a weighted blend using
// round-half-to-even arithmetic. Ranking sorts by final score descending and
// breaks ties on ascending apply URL so parallel scoring can never change
// the output order.
package scoring
