package engine

// TypeTag is the engine's dynamic type of a value, numbered as the C API
// numbers them.
type TypeTag int

const (
	TagUndefined TypeTag = 0
	TagNull      TypeTag = 1
	TagBoolean   TypeTag = 2
	TagNumber    TypeTag = 3
	TagString    TypeTag = 4
	TagObject    TypeTag = 5
	TagSymbol    TypeTag = 6
)

// PropertyAttributes control how ObjectSetProperty defines a property.
type PropertyAttributes uint32

const (
	PropertyNone       PropertyAttributes = 0
	PropertyReadOnly   PropertyAttributes = 1 << 1
	PropertyDontEnum   PropertyAttributes = 1 << 2
	PropertyDontDelete PropertyAttributes = 1 << 3
)

// CallAsFunction is the one native calling convention the engine knows.
// args is only valid for the duration of the call. A callback signals a
// thrown exception by storing a non-null value into *exception; the return
// value is then ignored by the engine but must still be a valid value.
type CallAsFunction func(ctx ContextRef, function, this ObjectRef, args []ValueRef, exception *ValueRef) ValueRef

// Finalize runs once when the engine collects an object of the class.
// ObjectGetPrivate is still valid on the object during the call.
type Finalize func(object ObjectRef)

// ClassDefinition describes a native class. Unset hooks keep the engine's
// default behavior.
type ClassDefinition struct {
	ClassName      string
	CallAsFunction CallAsFunction
	Finalize       Finalize
}

// API is the set of engine entry points the runtime is built on. It mirrors
// the engine's C API one call per method; implementations do no validation
// beyond what the engine itself does.
//
// Methods that take an exception pointer follow the engine convention: on
// failure they store the thrown value there and return a null or zero
// result. The pointer may be nil when the caller does not care.
type API interface {
	// Name identifies the backend.
	Name() string

	ContextGroupCreate() GroupRef
	ContextGroupRetain(group GroupRef) GroupRef
	ContextGroupRelease(group GroupRef)

	// GlobalContextCreateInGroup creates a context with one reference.
	// globalClass may be null for a plain global object.
	GlobalContextCreateInGroup(group GroupRef, globalClass ClassRef) GlobalContextRef
	GlobalContextRetain(ctx GlobalContextRef) GlobalContextRef
	GlobalContextRelease(ctx GlobalContextRef)
	ContextGetGlobalObject(ctx ContextRef) ObjectRef
	ContextGetGlobalContext(ctx ContextRef) GlobalContextRef
	ContextGetGroup(ctx ContextRef) GroupRef

	EvaluateScript(ctx ContextRef, script StringRef, this ObjectRef, sourceURL StringRef, startingLine int, exception *ValueRef) ValueRef
	CheckScriptSyntax(ctx ContextRef, script StringRef, sourceURL StringRef, startingLine int, exception *ValueRef) bool
	GarbageCollect(ctx ContextRef)

	// StringCreateWithUTF8CString creates a string with one reference.
	// s must not contain NUL bytes.
	StringCreateWithUTF8CString(s string) StringRef
	StringRetain(s StringRef) StringRef
	StringRelease(s StringRef)
	StringGetMaximumUTF8CStringSize(s StringRef) int
	// StringGetUTF8CString writes NUL-terminated UTF-8 into buf and returns
	// the number of bytes written, terminator included.
	StringGetUTF8CString(s StringRef, buf []byte) int
	StringIsEqual(a, b StringRef) bool

	ValueGetType(ctx ContextRef, v ValueRef) TypeTag
	ValueMakeUndefined(ctx ContextRef) ValueRef
	ValueMakeNull(ctx ContextRef) ValueRef
	ValueMakeBoolean(ctx ContextRef, b bool) ValueRef
	ValueMakeNumber(ctx ContextRef, n float64) ValueRef
	ValueMakeString(ctx ContextRef, s StringRef) ValueRef
	ValueToBoolean(ctx ContextRef, v ValueRef) bool
	ValueToNumber(ctx ContextRef, v ValueRef, exception *ValueRef) float64
	// ValueToStringCopy returns a new string with one reference.
	ValueToStringCopy(ctx ContextRef, v ValueRef, exception *ValueRef) StringRef
	ValueToObject(ctx ContextRef, v ValueRef, exception *ValueRef) ObjectRef
	ValueIsStrictEqual(ctx ContextRef, a, b ValueRef) bool
	ValueProtect(ctx ContextRef, v ValueRef)
	ValueUnprotect(ctx ContextRef, v ValueRef)

	ClassCreate(def *ClassDefinition) ClassRef
	ClassRelease(class ClassRef)

	ObjectMake(ctx ContextRef, class ClassRef, private uintptr) ObjectRef
	ObjectMakeError(ctx ContextRef, args []ValueRef, exception *ValueRef) ObjectRef
	ObjectGetPrivate(object ObjectRef) uintptr
	ObjectIsFunction(ctx ContextRef, object ObjectRef) bool
	ObjectHasProperty(ctx ContextRef, object ObjectRef, name StringRef) bool
	ObjectGetProperty(ctx ContextRef, object ObjectRef, name StringRef, exception *ValueRef) ValueRef
	ObjectSetProperty(ctx ContextRef, object ObjectRef, name StringRef, value ValueRef, attrs PropertyAttributes, exception *ValueRef)
	ObjectDeleteProperty(ctx ContextRef, object ObjectRef, name StringRef, exception *ValueRef) bool
	ObjectCopyPropertyNames(ctx ContextRef, object ObjectRef) PropertyNameArrayRef

	PropertyNameArrayGetCount(names PropertyNameArrayRef) int
	// PropertyNameArrayGetNameAtIndex returns a borrowed string; retain it to
	// keep it past PropertyNameArrayRelease.
	PropertyNameArrayGetNameAtIndex(names PropertyNameArrayRef, index int) StringRef
	PropertyNameArrayRelease(names PropertyNameArrayRef)
}
