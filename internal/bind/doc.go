// Package bind runs the scope pass over a parsed program.
//
// Binding happens in two walks. The declaration walk opens scopes and hoists
// every var, parameter, function and catch binding into its field. The
// resolution walk binds each Lookup to a field, creating alias fields in the
// function and with scopes a reference crosses, so the binding's reference
// count and crunch eligibility stay correct across closures.
package bind
