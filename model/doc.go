// Package model encodes classic combinatorial problems as lp.Formulation values
// and parses their plain-text instance files.
//
// Problems:
//
//	– Graph colouring, binary assignment model (BinaryColoring) and big-M integer
//	  model (IntegerColoring). Instance: "n m", then m lines "u v" (0-based).
//	– Minimum test cover / hitting set with a size cap k (TestCover).
//	  Instance: "n m k", then m lines listing the elements of each subset.
//	– 0/1 knapsack (Knapsack). Instance: "n W", then n lines "value weight".
//	– Any non-negative (M)ILP from a free-format MPS file (ParseMPS).
//
// TestCover can also be decided without an LP: BoundedSearch explores a search
// tree of depth k over the elements of the first subset not yet hit, and
// Smallest deepens it until a hitting set appears.
//
// In the plain formats blank lines and text after '#' are ignored. Parse
// errors satisfy errors.IsNotValid from github.com/juju/errors (IsNotSupported
// for MPS features outside the non-negative model) and carry the line number.
package model
