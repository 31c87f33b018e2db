// Package cart owns the storefront's shopping-cart line items: an ordered
// sequence of (medicine snapshot, quantity) pairs keyed uniquely by medicine
// id, with derived totals.
//
// The cart is deliberately independent of the session: it holds items for
// guests and survives logout. Items carry the catalog snapshot taken at add
// time and are never reconciled against the live catalog: a repriced or
// delisted medicine stays in the cart as it was added.
//
//	c := cart.New(ctx, store)
//	c.Add(ctx, medicine, 2)
//	c.Add(ctx, medicine, 3)      // same id: cumulative, quantity is now 5
//	c.UpdateQuantity(ctx, medicine.ID, 1) // absolute set
//	total := c.TotalAmount()
//
// All operations are synchronous and none of them fail; the persisted cart is
// rewritten before every mutation returns.
package cart
