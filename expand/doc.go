// Package expand implements the post-register-allocation pseudo instruction
// expansion pass. Given a function whose operands are bound to concrete
// machine locations, the pass aggregates call-frame reservation markers over
// the whole function, then walks the blocks once in program order, replacing
// every pseudo instruction with an equivalent concrete sequence chosen from
// the pseudo catalog under the active capability set.
//
// The pass never performs register allocation: frame offsets come from the
// Layout collaborator, and the one transient register it ever needs (to
// stage a 16-bit immediate) comes from the Scavenger collaborator. All other
// input defects are contract violations and abort the compilation.
package expand
