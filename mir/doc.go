// Package mir is the machine-level intermediate representation consumed by
// the expand pass: functions of ordered basic blocks, each ending in exactly
// one terminator, holding a mix of concrete and pseudo instructions whose
// operands are already bound to machine locations (or remain symbolic frame
// references, per each pseudo's declared shapes).
//
// The package also reads and writes a line-oriented textual form (".mir"
// files) so functions can be fed to the expansion driver from disk and
// compared after transformation.
package mir
