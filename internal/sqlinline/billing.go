package sqlinline

const QCreateCheckoutSession = `--sql 99842a2a-dcd0-4334-9d02-58c143cbdd8d
insert into subscriptions(id, user_id, plan, status, checkout_session, created_at, updated_at)
values (gen_random_uuid(), $1::uuid, $2::text, 'pending', $3::text, now(), now())
returning id;
`

const QSelectSubscriptionBySession = `--sql f4efd23b-bd17-4f12-9b48-a0bdc37c3668
select id, user_id, plan, status
from subscriptions
where checkout_session = $1::text
limit 1;
`

const QActivateSubscription = `--sql 8e438d7d-19a2-4bd0-b70b-bd2b85d0c147
update subscriptions
set status = 'active', updated_at = now()
where id = $1::uuid and status = 'pending'
returning user_id, plan;
`

const QSelectSubscriptionByUser = `--sql 0b660b3d-ffbf-4fd2-828a-194b93ba23a3
select id, plan, status, created_at, updated_at
from subscriptions
where user_id = $1::uuid
order by created_at desc
limit 1;
`
