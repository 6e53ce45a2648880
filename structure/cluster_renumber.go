package structure

// UpdateGIndcl renumbers Edge.IndCl for every live segment whose Cl equals
// cl, so that cl's edges occupy a dense [0, size) range again. It never
// changes any segment's Cl.
//
// Complexity: O(MtNum + size(cl)).
func (st *Structure) UpdateGIndcl(cl int) {
	var base uint64
	for j := 1; j <= st.MtNum; j++ {
		if st.Mt[j].Cl == cl {
			base = st.Mt[j].SetGCl(cl, base)
		}
	}
}
