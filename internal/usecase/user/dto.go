package user

// CreateUserRequest carries the raw input for creating a record.
// Pointer fields distinguish "absent" from "supplied": a supplied blank
// value is invalid input, never a request to clear the field.
type CreateUserRequest struct {
	FirstName  *string
	LastName   *string
	Email      *string
	Department *string
	Title      *string
	Phone      *string
	IsActive   *bool
}

// UpdateUserRequest is a partial patch. Only non-nil fields are applied;
// absent fields retain the stored value.
type UpdateUserRequest struct {
	FirstName  *string
	LastName   *string
	Email      *string
	Department *string
	Title      *string
	Phone      *string
	IsActive   *bool
}

// Empty reports whether the patch supplies no field at all.
func (r *UpdateUserRequest) Empty() bool {
	return r.FirstName == nil &&
		r.LastName == nil &&
		r.Email == nil &&
		r.Department == nil &&
		r.Title == nil &&
		r.Phone == nil &&
		r.IsActive == nil
}

// ListUsersRequest selects one page of the directory listing.
// Skip below zero is treated as zero; Take is clamped to [1, MaxTake]
// with values <= 0 falling back to the default page size.
type ListUsersRequest struct {
	Skip int
	Take int
}
