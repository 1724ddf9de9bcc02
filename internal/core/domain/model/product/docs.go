// Package product models the goods an operator sells to one class of students:
// printed books handed over at a desk and online courses activated on a phone.
package product
