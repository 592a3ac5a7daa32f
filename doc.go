/*
Package impurity provides the splitting criteria used to grow decision trees:
class counting, unique value enumeration, Gini impurity, entropy and the
information gain of a two-way split.

Rows are slices of comparable values accessed by column index. None of the
functions in this package mutate their input, keep state between calls or
log, so they are safe to use concurrently on shared rows.
*/
package impurity
